package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"nut/internal/diag"
	"nut/internal/source"
)

type palette struct {
	err, warn, note, caret, path *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		note:  color.New(color.FgCyan),
		caret: color.New(color.FgGreen, color.Bold),
		path:  color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.note, p.caret, p.path} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevWarning:
		return p.warn
	case diag.SevInfo:
		return p.note
	default:
		return p.err
	}
}

// Pretty renders diagnostics in emission order:
//
//	semantic error: line 2, col 11: 'g' is not a function
//	    int x = g(1);
//	            ^
//
// Every diagnostic with a resolvable source line gets the line and a caret.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, &d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	var sb strings.Builder
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	if opts.ShowPath && f != nil {
		sb.WriteString(pal.path.Sprint(formatPath(f, fs, opts.PathMode)))
		sb.WriteString(": ")
	}
	sb.WriteString(pal.severity(d.Severity).Sprint(Header(d)))
	fmt.Fprintf(&sb, ": line %d, col %d: %s\n", start.Line, start.Col, d.Message)
	if f != nil && len(f.Content) > 0 {
		writeSourceLine(&sb, f.GetLine(start.Line), start.Col, pal)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			pos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(&sb, "  %s: line %d, col %d: %s\n", pal.note.Sprint("note"), pos.Line, pos.Col, n.Msg)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSourceLine(sb *strings.Builder, line string, col uint32, pal palette) {
	sb.WriteString(line)
	sb.WriteByte('\n')
	sb.WriteString(CaretIndent(line, col))
	sb.WriteString(pal.caret.Sprint("^"))
	sb.WriteByte('\n')
}

// Header is the label that opens a pretty diagnostic.
func Header(d *diag.Diagnostic) string {
	switch d.Severity {
	case diag.SevWarning:
		return "warning"
	case diag.SevInfo:
		return "note"
	}
	if d.Code == diag.SemaInternal {
		return "internal compiler error"
	}
	switch c := int(d.Code); {
	case c >= 1000 && c < 3000:
		return "parse error"
	case c >= 3000 && c < 4000:
		return "semantic error"
	}
	return "error"
}

// CaretIndent returns the padding that puts a caret under byte column col
// (1-based) of line. Tabs are kept so the caret lines up in any tab width;
// wide runes count double.
func CaretIndent(line string, col uint32) string {
	n := int(col) - 1
	if n <= 0 {
		return ""
	}
	if n > len(line) {
		n = len(line)
	}
	var sb strings.Builder
	for _, r := range line[:n] {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.Path
	}
}
