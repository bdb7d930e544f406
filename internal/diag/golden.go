package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"nut/internal/source"
)

// shortEntry is one rendered line of the short format.
type shortEntry struct {
	sev, code, path string
	line, col       uint32
	msg             string
}

func (e shortEntry) compare(o shortEntry) int {
	return cmp.Or(
		cmp.Compare(e.path, o.path),
		cmp.Compare(e.line, o.line),
		cmp.Compare(e.col, o.col),
		cmp.Compare(e.sev, o.sev),
		cmp.Compare(e.code, o.code),
		cmp.Compare(e.msg, o.msg),
	)
}

// FormatGoldenDiagnostics renders one line per diagnostic,
//
//	<severity> <CODE> <path>:<line>:<col> <message>
//
// ordered by position, then severity, code and text. Notes become "note"
// lines when includeNotes is set. Lines are joined without a trailing newline.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	var entries []shortEntry
	add := func(sev, code string, span source.Span, msg string) {
		file := fs.Get(span.File)
		if file == nil {
			return
		}
		start, _ := fs.Resolve(span)
		entries = append(entries, shortEntry{
			sev:  sev,
			code: code,
			path: displayPath(file, fs),
			line: start.Line,
			col:  start.Col,
			msg:  oneLine(msg),
		})
	}
	for i := range diags {
		d := &diags[i]
		add(d.Severity.String(), d.Code.ID(), d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code.ID(), n.Span, n.Msg)
		}
	}
	slices.SortStableFunc(entries, shortEntry.compare)

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s %s %s:%d:%d %s", e.sev, e.code, e.path, e.line, e.col, e.msg)
	}
	return strings.Join(lines, "\n")
}

// displayPath: виртуальные файлы как есть, дисковые относительно BaseDir,
// всегда со слэшами и без "./".
func displayPath(file *source.File, fs *source.FileSet) string {
	p := file.Path
	if !file.Flags.Has(source.FileVirtual) {
		p = file.FormatPath("relative", fs.BaseDir())
	}
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
