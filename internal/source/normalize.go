package source

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalize prepares raw file bytes for lexing: the BOM is dropped, CRLF
// becomes LF (a lone CR stays) and the text is put into NFC so equal
// identifiers compare byte-equal. The flags say what changed.
func Normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	if !norm.NFC.IsNormal(content) {
		content = norm.NFC.Bytes(content)
		flags |= FileNormalizedNFC
	}
	return content, flags
}

// lineIndex lists the offset of every '\n'.
func lineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, len(content)/32+1)
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return idx
		}
		off += i
		idx = append(idx, uint32(off)) // len(content) проверена в Add
		off++
	}
}

// lineCol: перед off стоит k переводов строки, значит строка k+1.
func lineCol(idx []uint32, off uint32) LineCol {
	k, _ := slices.BinarySearch(idx, off)
	var lineStart uint32
	if k > 0 {
		lineStart = idx[k-1] + 1
	}
	return LineCol{Line: uint32(k) + 1, Col: off - lineStart + 1}
}

func slashClean(p string) string { return filepath.ToSlash(filepath.Clean(p)) }

// AbsolutePath is filepath.Abs with forward slashes.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return slashClean(abs), nil
}

// RelativePath expresses p relative to baseDir, or absolutely when p lies
// outside it.
func RelativePath(p, baseDir string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return slashClean(abs), nil
	}
	return slashClean(rel), nil
}
