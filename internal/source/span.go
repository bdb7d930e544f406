package source

import "strconv"

// Span is the byte range [Start, End) of one file.
type Span struct {
	File       FileID
	Start, End uint32
}

func (s Span) Empty() bool { return s.End <= s.Start }
func (s Span) Len() uint32  { return s.End - s.Start }

// String prints "file:start-end" for dumps and test failures.
func (s Span) String() string {
	b := strconv.AppendUint(nil, uint64(s.File), 10)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(s.Start), 10)
	b = append(b, '-')
	return string(strconv.AppendUint(b, uint64(s.End), 10))
}

// Cover extends s to include other. A span of another file leaves s as is.
func (s Span) Cover(other Span) Span {
	if s.File == other.File {
		s.Start = min(s.Start, other.Start)
		s.End = max(s.End, other.End)
	}
	return s
}

// Contains reports other ⊆ s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}
