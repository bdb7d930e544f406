package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns the files of one run. IDs are dense and start at 0; adding
// the same path twice yields two files.
type FileSet struct {
	files   []File
	baseDir string // пусто: текущий каталог
}

func NewFileSet() *FileSet { return &FileSet{} }

// NewFileSetWithBase fixes the directory relative paths are printed against.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{baseDir: baseDir}
}

// BaseDir returns the configured base or the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add stores already normalized content.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", path, err))
	}
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    slashClean(path),
		Content: content,
		LineIdx: lineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return id
}

// Load reads and normalizes a file from disk.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-supplied source path
	if err != nil {
		return 0, err
	}
	content, flags := Normalize(content)
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds in-memory text (tests, stdin) under name.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	content, flags := Normalize(content)
	return fs.Add(name, content, flags|FileVirtual)
}

// Get returns nil for an unknown ID.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

func (fs *FileSet) Len() int { return len(fs.files) }

// Resolve maps both ends of span to line/column; unknown files give 1:1.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{1, 1}, LineCol{1, 1}
	}
	return f.Position(span.Start), f.Position(span.End)
}

func (f *File) Position(off uint32) LineCol { return lineCol(f.LineIdx, off) }

// GetLine returns line n (1-based) without its newline, "" past the end.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return ""
	}
	start, end := uint32(0), uint32(len(f.Content))
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	if int(n) <= len(f.LineIdx) {
		end = f.LineIdx[n-1]
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path for output. mode is absolute, relative,
// basename or anything else for the path as given.
func (f *File) FormatPath(mode, baseDir string) string {
	var (
		p   string
		err error
	)
	switch mode {
	case "absolute":
		p, err = AbsolutePath(f.Path)
	case "relative":
		if baseDir == "" {
			baseDir = "."
		}
		p, err = RelativePath(f.Path, baseDir)
	case "basename":
		return filepath.Base(f.Path)
	default:
		return f.Path
	}
	if err != nil {
		return f.Path
	}
	return p
}
