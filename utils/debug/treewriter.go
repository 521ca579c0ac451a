// Package debug formats program state into indented text suitable for
// debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

// TreeWriter accumulates indented lines.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{w: &strings.Builder{}}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

// Line writes formatted line at depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Field writes "label: value" line at depth. Strings are quoted so empty
// and whitespace values stay visible, empty string is written as is.
func (tw *TreeWriter) Field(depth int, label string, value any) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	switch v := value.(type) {
	case string:
		if v != "" {
			v = strconv.Quote(v)
		}
		tw.w.WriteString(v)
	case fmt.Stringer:
		tw.w.WriteString(v.String())
	default:
		fmt.Fprint(tw.w, v)
	}
	tw.w.WriteByte('\n')
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(indent)
	}
}
