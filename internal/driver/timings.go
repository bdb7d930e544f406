package driver

import (
	"encoding/json"
	"fmt"

	"nut/internal/diag"
	"nut/internal/observ"
	"nut/internal/source"
)

// AppendTimingDiagnostic records the timer report in bag as an info
// diagnostic. Its only note is the JSON report, kept by the JSON renderer
// even when other notes are hidden. The entry is added past the bag limit.
func AppendTimingDiagnostic(bag *diag.Bag, timer *observ.Timer) {
	if bag == nil || timer == nil {
		return
	}
	report := timer.Report()
	payload, err := json.Marshal(struct {
		Kind string `json:"kind"`
		observ.Report
	}{"check", report})
	if err != nil {
		return
	}
	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{},
		fmt.Sprintf("timings (check): total %.2f ms", report.TotalMS)).
		WithNote(source.Span{}, string(payload))
	if !bag.Add(d) {
		extra := diag.NewBag(1)
		extra.Add(d)
		bag.Merge(extra)
	}
}
