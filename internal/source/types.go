package source

// FileID is the index of a file in its FileSet.
type FileID uint32

// FileFlags record how a file was obtained and what Normalize changed.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // from memory, not from disk
	FileHadBOM                               // leading UTF-8 BOM removed
	FileNormalizedCRLF                       // CRLF folded to LF
	FileNormalizedNFC                        // text rewritten to NFC
)

// Has reports whether all bits of f are set.
func (fl FileFlags) Has(f FileFlags) bool { return fl&f == f }

// File is one normalized source text. Content is immutable once added.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // позиции всех '\n'
	Hash    [32]byte // sha256 нормализованного текста
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line, Col uint32
}
