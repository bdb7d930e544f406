package driver

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"nut/internal/ast"
	"nut/internal/diag"
	"nut/internal/parser"
	"nut/internal/project"
	"nut/internal/sema"
	"nut/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты проверки файлов на диске, ключ: хеш
// содержимого, конфигурации и версии. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedNote is a diag.Note with the file id stripped.
type CachedNote struct {
	Start, End uint32
	Msg        string
}

// CachedDiagnostic is a diag.Diagnostic with the file id stripped; spans are
// rebound to the current FileID on load.
type CachedDiagnostic struct {
	Severity   uint8
	Code       uint16
	Message    string
	Start, End uint32
	Notes      []CachedNote
}

// Error kinds recorded in DiskPayload.ErrKind.
const (
	errKindNone     = ""
	errKindParse    = "parse"
	errKindSemantic = "semantic"
	errKindInternal = "internal"
)

// DiskPayload is what a cache entry holds for one file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	Diagnostics []CachedDiagnostic

	// ErrKind and ErrIndex restore Result.Err: the fatal diagnostic is
	// Diagnostics[ErrIndex].
	ErrKind  string
	ErrIndex int

	// Internal errors carry no diagnostic of their own.
	InternalPass string
	InternalNode uint32
	InternalMsg  string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache uses dir as the cache root.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "files", key.Shard(), key.String()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. Entries written
// with another schema are reported as misses.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}

// newPayload captures the diagnostics and fatal error of a finished check.
func newPayload(res *Result) *DiskPayload {
	p := &DiskPayload{Path: res.Path, ErrIndex: -1}
	items := res.Bag.Items()
	p.Diagnostics = make([]CachedDiagnostic, len(items))
	for i, d := range items {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		p.Diagnostics[i] = cd
	}

	var (
		perr *parser.Error
		serr *sema.SemanticError
		ierr *sema.InternalError
	)
	switch {
	case errors.As(res.Err, &perr):
		p.ErrKind, p.ErrIndex = errKindParse, indexOf(items, perr.Diag)
	case errors.As(res.Err, &serr):
		p.ErrKind, p.ErrIndex = errKindSemantic, indexOf(items, serr.Diag)
	case errors.As(res.Err, &ierr):
		p.ErrKind = errKindInternal
		p.InternalPass, p.InternalNode, p.InternalMsg = ierr.Pass, uint32(ierr.Node), ierr.Msg
	}
	return p
}

func indexOf(items []diag.Diagnostic, d diag.Diagnostic) int {
	for i := range items {
		if items[i].Code == d.Code && items[i].Primary == d.Primary && items[i].Message == d.Message {
			return i
		}
	}
	return -1
}

// restore rebuilds a Result from a payload for the file fileID.
func (p *DiskPayload) restore(res *Result, fileID source.FileID) {
	for _, cd := range p.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: fileID, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: source.Span{File: fileID, Start: n.Start, End: n.End}, Msg: n.Msg})
		}
		res.Bag.Add(d)
	}

	items := res.Bag.Items()
	fatal := func() (diag.Diagnostic, bool) {
		if p.ErrIndex < 0 || p.ErrIndex >= len(items) {
			return diag.Diagnostic{}, false
		}
		return items[p.ErrIndex], true
	}
	switch p.ErrKind {
	case errKindParse:
		if d, ok := fatal(); ok {
			res.Err = &parser.Error{Diag: d}
		}
	case errKindSemantic:
		if d, ok := fatal(); ok {
			res.Err = &sema.SemanticError{Diag: d}
		}
	case errKindInternal:
		res.Err = &sema.InternalError{Pass: p.InternalPass, Node: ast.NodeID(p.InternalNode), Msg: p.InternalMsg}
	}
}
