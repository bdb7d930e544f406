package diagfmt

import (
	"encoding/json"
	"io"

	"nut/internal/diag"
	"nut/internal/source"
)

// Position is a 1-based line/column pair.
type Position struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// Location: байтовый диапазон плюс, по запросу, line/col концов.
type Location struct {
	File  string    `json:"file"`
	Start uint32    `json:"start"`
	End   uint32    `json:"end"`
	From  *Position `json:"from,omitempty"`
	To    *Position `json:"to,omitempty"`
}

type ReportNote struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

type ReportEntry struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Header   string       `json:"header"`
	Message  string       `json:"message"`
	Location Location     `json:"location"`
	Notes    []ReportNote `json:"notes,omitempty"`
}

// Report is the document written by JSON. Errors and Warnings count the
// whole bag even when Max truncates Diagnostics.
type Report struct {
	Diagnostics []ReportEntry `json:"diagnostics"`
	Count       int           `json:"count"`
	Errors      int           `json:"errors"`
	Warnings    int           `json:"warnings"`
}

type locator struct {
	fs        *source.FileSet
	mode      PathMode
	positions bool
}

func (l locator) locate(span source.Span) Location {
	loc := Location{Start: span.Start, End: span.End}
	f := l.fs.Get(span.File)
	if f == nil {
		return loc
	}
	loc.File = formatPath(f, l.fs, l.mode)
	if l.positions {
		from, to := l.fs.Resolve(span)
		loc.From = &Position{Line: from.Line, Col: from.Col}
		loc.To = &Position{Line: to.Line, Col: to.Col}
	}
	return loc
}

// BuildReport converts a bag into a Report.
func BuildReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Report {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	loc := locator{fs: fs, mode: opts.PathMode, positions: opts.IncludePositions}

	rep := Report{
		Diagnostics: make([]ReportEntry, 0, len(items)),
		Errors:      bag.Count(diag.SevError),
		Warnings:    bag.Count(diag.SevWarning),
	}
	for i := range items {
		d := &items[i]
		entry := ReportEntry{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Header:   Header(d),
			Message:  d.Message,
			Location: loc.locate(d.Primary),
		}
		// тайминги без заметок бессмысленны
		if opts.IncludeNotes || d.Code == diag.ObsTimings {
			for _, n := range d.Notes {
				entry.Notes = append(entry.Notes, ReportNote{Message: n.Msg, Location: loc.locate(n.Span)})
			}
		}
		rep.Diagnostics = append(rep.Diagnostics, entry)
	}
	rep.Count = len(rep.Diagnostics)
	return rep
}

// JSON writes BuildReport as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(bag, fs, opts))
}
