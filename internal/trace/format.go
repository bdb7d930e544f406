package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Format is the encoding of a written event.
type Format uint8

const (
	FormatAuto   Format = iota // by output file extension
	FormatText                 // one indented line per event
	FormatNDJSON               // one JSON object per line
)

var formatNames = [...]string{
	FormatAuto:   "auto",
	FormatText:   "text",
	FormatNDJSON: "ndjson",
}

func (f Format) String() string { return lookupName(formatNames[:], int(f)) }

// ParseFormat accepts auto|text|ndjson; "json" and "" are aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return FormatAuto, nil
	case "json":
		return FormatNDJSON, nil
	}
	if i := indexName(formatNames[:], s); i >= 0 {
		return Format(i), nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// FormatEvent encodes ev as one newline-terminated record.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return encodeJSON(ev)
	}
	return encodeText(ev)
}

type wireEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"`
	GID      uint64            `json:"gid,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

func encodeJSON(ev *Event) []byte {
	data, err := json.Marshal(wireEvent{
		Time:     ev.Time.Format(timeLayout),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		GID:      ev.GID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

var kindMarks = [...]string{
	KindSpanBegin: "→",
	KindSpanEnd:   "←",
	KindPoint:     "•",
	KindHeartbeat: "♡",
}

// encodeText: "#seq  [indent]mark name (detail) {k=v, ...}".
func encodeText(ev *Event) []byte {
	b := make([]byte, 0, 64)
	b = append(b, '#')
	seq := strconv.FormatUint(ev.Seq, 10)
	b = append(b, seq...)
	for i := len(seq); i < 6; i++ {
		b = append(b, ' ')
	}
	b = append(b, ' ')
	if ev.ParentID > 0 {
		b = append(b, "  "...)
	}
	if int(ev.Kind) < len(kindMarks) && kindMarks[ev.Kind] != "" {
		b = append(b, kindMarks[ev.Kind]...)
		b = append(b, ' ')
	}
	b = append(b, ev.Name...)
	if ev.Detail != "" {
		b = append(b, " ("...)
		b = append(b, ev.Detail...)
		b = append(b, ')')
	}
	if len(ev.Extra) > 0 {
		b = append(b, " {"...)
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				b = append(b, ", "...)
			}
			b = append(b, k...)
			b = append(b, '=')
			b = append(b, ev.Extra[k]...)
		}
		b = append(b, '}')
	}
	return append(b, '\n')
}
