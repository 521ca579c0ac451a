package localize

import (
	"fontget/utils/debug"
)

// Dump renders report in human readable form for debug archive.
func (r *Report) Dump() string {
	tw := debug.NewTreeWriter()

	tw.Field(0, "stylesheet", r.Stylesheet)
	tw.Line(0, "resolved (%d)", len(r.Resolved))
	for _, d := range r.Resolved {
		tw.Field(1, "url", d.URL)
		tw.Field(2, "local", d.Local)
		tw.Field(2, "format", d.Format)
		tw.Field(2, "family", d.Family)
		tw.Field(2, "style", d.Style)
		tw.Field(2, "weight", d.Weight)
		tw.Field(2, "display", d.Display)
	}
	tw.Line(0, "failed (%d)", len(r.Failed))
	for _, f := range r.Failed {
		tw.Field(1, "url", f.URL)
		tw.Field(2, "stage", f.Stage)
		tw.Field(2, "error", f.Err.Error())
	}
	return tw.String()
}
