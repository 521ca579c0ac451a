package css_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lithammer/dedent"
	"go.uber.org/zap/zaptest"

	"fontget/css"
)

// googleFontsCSS is what fonts.googleapis.com/css2 serves to a modern browser.
var googleFontsCSS = dedent.Dedent(`
	/* cyrillic */
	@font-face {
	  font-family: 'Roboto';
	  font-style: italic;
	  font-weight: 400;
	  font-display: swap;
	  src: url(https://fonts.gstatic.com/s/roboto/v47/KFOKCnqEu92Fr1Mu53ZEC9_Vu3r1gIhOszmOClHrs6ljXfMMLoHQuAX-k3Yi128m0kN2.woff2) format('woff2');
	  unicode-range: U+0301, U+0400-045F, U+0490-0491, U+04B0-04B1, U+2116;
	}
	/* latin */
	@font-face {
	  font-family: 'Roboto';
	  font-style: normal;
	  font-weight: 700;
	  font-display: swap;
	  src: url(https://fonts.gstatic.com/s/roboto/v47/KFO7CnqEu92Fr1ME7kSn66aGLdTylUAMa3yUBA.woff2) format('woff2');
	  unicode-range: U+0000-00FF, U+0131, U+0152-0153;
	}
`)

func TestParser_GoogleFontsStylesheet(t *testing.T) {
	p := css.NewParser(zaptest.NewLogger(t))
	sheet := p.Parse([]byte(googleFontsCSS), "test")

	want := []css.FontFace{
		{
			Family:  "Roboto",
			Style:   "italic",
			Weight:  "400",
			Display: "swap",
			Src:     "url(https://fonts.gstatic.com/s/roboto/v47/KFOKCnqEu92Fr1Mu53ZEC9_Vu3r1gIhOszmOClHrs6ljXfMMLoHQuAX-k3Yi128m0kN2.woff2) format('woff2')",
		},
		{
			Family:  "Roboto",
			Style:   "normal",
			Weight:  "700",
			Display: "swap",
			Src:     "url(https://fonts.gstatic.com/s/roboto/v47/KFO7CnqEu92Fr1ME7kSn66aGLdTylUAMa3yUBA.woff2) format('woff2')",
		},
	}
	if diff := cmp.Diff(want, sheet.FontFaces()); diff != "" {
		t.Errorf("FontFaces() mismatch (-want +got):\n%s", diff)
	}
	if sheet.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", sheet.Skipped)
	}
}

func TestParser_SkipsOtherRules(t *testing.T) {
	input := dedent.Dedent(`
		@charset "utf-8";
		@import url("other.css");
		body { font-family: 'Roboto', sans-serif; }
		h1, h2 { font-weight: 700; }
		@media print {
		  p { color: black; }
		}
		@font-face {
		  FONT-FAMILY: "Open Sans";
		  src: url('OpenSans.ttf') format("truetype");
		}
	`)

	sheet := css.NewParser(nil).Parse([]byte(input))

	if diff := cmp.Diff([]string{"other.css"}, sheet.Imports()); diff != "" {
		t.Errorf("Imports() mismatch (-want +got):\n%s", diff)
	}
	faces := sheet.FontFaces()
	if len(faces) != 1 {
		t.Fatalf("expected 1 font-face, got %d", len(faces))
	}
	if faces[0].Family != "Open Sans" {
		t.Errorf("Family = %q", faces[0].Family)
	}
	// @charset, body, h1/h2 and @media
	if sheet.Skipped != 4 {
		t.Errorf("Skipped = %d, want 4", sheet.Skipped)
	}
}

func TestParser_ImportForms(t *testing.T) {
	input := `@import "a.css"; @import url(b.css); @import url( 'c.css' );`
	sheet := css.NewParser(nil).Parse([]byte(input))

	if diff := cmp.Diff([]string{"a.css", "b.css", "c.css"}, sheet.Imports()); diff != "" {
		t.Errorf("Imports() mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_Empty(t *testing.T) {
	sheet := css.NewParser(nil).Parse(nil)
	if len(sheet.Items) != 0 || sheet.Skipped != 0 {
		t.Errorf("unexpected content: %+v", sheet)
	}
}

func TestFontFace_Sources(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []css.Source
	}{
		{
			name: "single unquoted",
			src:  "url(https://fonts.gstatic.com/s/a.woff2) format('woff2')",
			want: []css.Source{{URL: "https://fonts.gstatic.com/s/a.woff2", Format: "woff2"}},
		},
		{
			name: "quoted without format",
			src:  `url("a.ttf")`,
			want: []css.Source{{URL: "a.ttf"}},
		},
		{
			name: "several sources",
			src:  `local('Roboto'), url('a.woff2') format("woff2"), url(a.woff) format(woff)`,
			want: []css.Source{{URL: "a.woff2", Format: "woff2"}, {URL: "a.woff", Format: "woff"}},
		},
		{
			name: "no url",
			src:  "local(Roboto)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := css.FontFace{Src: tt.src}.Sources()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Sources() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSrcValue(t *testing.T) {
	if got := css.SrcValue("abc.woff2", "woff2"); got != "url('abc.woff2') format('woff2')" {
		t.Errorf("SrcValue() = %q", got)
	}
	if got := css.SrcValue("it's.woff", ""); got != `url('it\'s.woff')` {
		t.Errorf("SrcValue() = %q", got)
	}
}

func TestStylesheet_WriteTo(t *testing.T) {
	sheet := &css.Stylesheet{Header: "Generated CSS for local font files"}
	sheet.AddFontFace(css.FontFace{
		Family:  "Roboto",
		Src:     css.SrcValue("abc.woff2", "woff2"),
		Style:   "normal",
		Weight:  "400",
		Display: "swap",
	})
	sheet.AddFontFace(css.FontFace{
		Family: "O'Neil",
		Src:    css.SrcValue("def.woff", "woff"),
		Weight: "700",
	})

	want := dedent.Dedent(`
		/* Generated CSS for local font files */

		@font-face {
		    font-family: 'Roboto';
		    src: url('abc.woff2') format('woff2');
		    font-style: normal;
		    font-weight: 400;
		    font-display: swap;
		}

		@font-face {
		    font-family: 'O\'Neil';
		    src: url('def.woff') format('woff');
		    font-weight: 700;
		}
	`)
	want = strings.TrimPrefix(want, "\n")

	var sb strings.Builder
	n, err := sheet.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if int(n) != sb.Len() {
		t.Errorf("WriteTo() reported %d bytes, wrote %d", n, sb.Len())
	}
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("WriteTo() mismatch (-want +got):\n%s", diff)
	}
	if sheet.String() != sb.String() {
		t.Error("String() differs from WriteTo()")
	}
}

func TestStylesheet_RoundTrip(t *testing.T) {
	sheet := &css.Stylesheet{Header: "x"}
	ff := css.FontFace{
		Family:  "Noto Sans",
		Src:     css.SrcValue("noto.woff2", "woff2"),
		Style:   "italic",
		Weight:  "300",
		Display: "optional",
	}
	sheet.AddFontFace(ff)

	parsed := css.NewParser(nil).Parse([]byte(sheet.String()))
	if diff := cmp.Diff([]css.FontFace{ff}, parsed.FontFaces()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
