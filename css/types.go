package css

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// cssEscapeSingleQuoted escapes a string for use inside CSS single quotes.
func cssEscapeSingleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `'\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Source is a single url() reference of @font-face src with optional
// format() hint.
type Source struct {
	URL    string
	Format string
}

// FontFace represents an @font-face declaration.
type FontFace struct {
	Family  string // font-family value, unquoted
	Src     string // src value as written (may hold several comma separated sources)
	Style   string // font-style
	Weight  string // font-weight
	Display string // font-display
}

// srcPattern matches url() with optional format() following it.
// Handles: url("path"), url('path'), url(path) and format("x"), format('x'), format(x)
var srcPattern = regexp.MustCompile(`url\s*\(\s*(?:["']([^"']*)["']|([^)"']*))\s*\)(?:\s*format\(\s*["']?([^"')]*)["']?\s*\))?`)

// Sources returns url() references of src in declaration order.
func (ff FontFace) Sources() []Source {
	var res []Source
	for _, m := range srcPattern.FindAllStringSubmatch(ff.Src, -1) {
		// Group 1 is quoted URL, group 2 is unquoted
		u := m[1]
		if u == "" {
			u = m[2]
		}
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		res = append(res, Source{URL: u, Format: strings.TrimSpace(m[3])})
	}
	return res
}

// SrcValue builds src value referencing a single file.
func SrcValue(url, format string) string {
	if format == "" {
		return fmt.Sprintf("url('%s')", cssEscapeSingleQuoted(url))
	}
	return fmt.Sprintf("url('%s') format('%s')", cssEscapeSingleQuoted(url), cssEscapeSingleQuoted(format))
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of FontFace or Import is non-nil.
type StylesheetItem struct {
	FontFace *FontFace // A @font-face declaration
	Import   *string   // An @import URL
}

// Stylesheet represents the part of a CSS stylesheet fonts care about.
type Stylesheet struct {
	Header  string           // Comment written before any items, without /* */
	Items   []StylesheetItem // All kept top-level items in source order
	Skipped int              // Number of top-level rules and at-rules which were not kept
}

// Imports returns all @import URLs from the stylesheet in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, item := range s.Items {
		if item.Import != nil {
			urls = append(urls, *item.Import)
		}
	}
	return urls
}

// FontFaces returns all @font-face declarations from the stylesheet in source order.
func (s *Stylesheet) FontFaces() []FontFace {
	var faces []FontFace
	for _, item := range s.Items {
		if item.FontFace != nil {
			faces = append(faces, *item.FontFace)
		}
	}
	return faces
}

// AddFontFace appends @font-face declaration to the stylesheet.
func (s *Stylesheet) AddFontFace(ff FontFace) {
	s.Items = append(s.Items, StylesheetItem{FontFace: &ff})
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	if s.Header != "" {
		n, err := fmt.Fprintf(w, "/* %s */\n", s.Header)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	for _, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Import != nil:
			n, err = fmt.Fprintf(w, "\n@import url('%s');\n", cssEscapeSingleQuoted(*item.Import))
		case item.FontFace != nil:
			n, err = writeFontFace(w, item.FontFace)
		}

		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeFontFace writes an @font-face block to w, properties go in the order
// family, src, style, weight, display. Empty properties are omitted.
func writeFontFace(w io.Writer, ff *FontFace) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n@font-face {\n")
	if ff.Family != "" {
		fmt.Fprintf(&sb, "    font-family: '%s';\n", cssEscapeSingleQuoted(ff.Family))
	}
	for _, prop := range [...]struct{ name, value string }{
		{"src", ff.Src},
		{"font-style", ff.Style},
		{"font-weight", ff.Weight},
		{"font-display", ff.Display},
	} {
		if prop.value != "" {
			fmt.Fprintf(&sb, "    %s: %s;\n", prop.name, prop.value)
		}
	}
	sb.WriteString("}\n")

	return io.WriteString(w, sb.String())
}
