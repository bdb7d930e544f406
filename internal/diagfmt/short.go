package diagfmt

import (
	"io"

	"nut/internal/diag"
	"nut/internal/source"
)

// Short writes one line per diagnostic in the golden-file format.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, showNotes bool) error {
	out := diag.FormatGoldenDiagnostics(bag.Items(), fs, showNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

// Render dispatches to the renderer selected by format.
func Render(w io.Writer, format Format, bag *diag.Bag, fs *source.FileSet, pretty PrettyOpts) error {
	switch format {
	case FormatShort:
		return Short(w, bag, fs, pretty.ShowNotes)
	case FormatJSON:
		return JSON(w, bag, fs, JSONOpts{
			IncludePositions: true,
			PathMode:         pretty.PathMode,
			IncludeNotes:     pretty.ShowNotes,
		})
	default:
		return Pretty(w, bag, fs, pretty)
	}
}
