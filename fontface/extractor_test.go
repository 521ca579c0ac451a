package fontface

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lithammer/dedent"
	"go.uber.org/zap/zaptest"

	"fontget/common"
	"fontget/config"
)

const testHost = "https://fonts.gstatic.com/"

var testDefaults = config.DefaultsConfig{Style: "normal", Weight: "400", Display: "swap"}

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := NewExtractor(testHost, testDefaults, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewExtractor() error = %v", err)
	}
	return e
}

func TestExtract_AllProperties(t *testing.T) {
	input := dedent.Dedent(`
		/* latin */
		@font-face {
		  font-family: 'Open Sans';
		  font-style: italic;
		  font-weight: 600;
		  font-display: fallback;
		  src: url(https://fonts.gstatic.com/s/opensans/v40/memQYaGs126MiZpBA-UFUIcVXSCEkx2cmqvXlWq8tWZ0Pw86hd0RkyFjWV0ewA.ttf) format('truetype');
		}
	`)

	got, err := newTestExtractor(t).Extract(input)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []Descriptor{{
		Family:  "Open Sans",
		Style:   "italic",
		Weight:  "600",
		Display: "fallback",
		URL:     "https://fonts.gstatic.com/s/opensans/v40/memQYaGs126MiZpBA-UFUIcVXSCEkx2cmqvXlWq8tWZ0Pw86hd0RkyFjWV0ewA.ttf",
		Format:  common.FontFormatTruetype,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_Defaults(t *testing.T) {
	input := `@font-face{font-family:'Roboto';src:url(https://fonts.gstatic.com/s/roboto/v1/abc.woff2) format('woff2');}`

	got, err := newTestExtractor(t).Extract(input)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []Descriptor{{
		Family:  "Roboto",
		Style:   "normal",
		Weight:  "400",
		Display: "swap",
		URL:     "https://fonts.gstatic.com/s/roboto/v1/abc.woff2",
		Format:  common.FontFormatWoff2,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_ConfiguredDefaults(t *testing.T) {
	e, err := NewExtractor(testHost, config.DefaultsConfig{Style: "oblique", Weight: "bold", Display: "block"}, nil)
	if err != nil {
		t.Fatalf("NewExtractor() error = %v", err)
	}
	input := `@font-face { font-family: 'Lato'; font-weight: 300; src: url(https://fonts.gstatic.com/s/lato/a.woff) format('woff'); }`

	got, err := e.Extract(input)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 descriptor, got %d", len(got))
	}
	if got[0].Style != "oblique" || got[0].Weight != "300" || got[0].Display != "block" {
		t.Errorf("unexpected defaults applied: %+v", got[0])
	}
}

func TestExtract_CaseInsensitive(t *testing.T) {
	input := `@FONT-FACE { FONT-FAMILY: 'Lato'; FONT-STYLE: Normal; SRC: URL(https://fonts.gstatic.com/s/lato/a.woff) FORMAT('WOFF'); }`

	got, err := newTestExtractor(t).Extract(input)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got[0].Style != "Normal" {
		t.Errorf("Style = %q, values must be kept as written", got[0].Style)
	}
	if got[0].Format != common.FontFormatWoff {
		t.Errorf("Format = %v, want woff", got[0].Format)
	}
}

func TestExtract_OrderAndSkipping(t *testing.T) {
	input := dedent.Dedent(`
		@import url(https://fonts.googleapis.com/css2?family=Other);
		@font-face {
		  font-family: 'A';
		  src: url(https://fonts.gstatic.com/s/a/1.woff2) format('woff2');
		}
		@font-face {
		  font-family: 'Foreign';
		  src: url(https://cdn.example.com/f.woff2) format('woff2');
		}
		@font-face {
		  font-family: 'Legacy';
		  src: url(https://fonts.gstatic.com/s/l/1.eot) format('embedded-opentype');
		}
		@font-face {
		  font-family: "DoubleQuoted";
		  src: url(https://fonts.gstatic.com/s/d/1.woff2) format('woff2');
		}
		@font-face {
		  font-family: 'B';
		  font-weight: 700;
		  src: url(https://fonts.gstatic.com/s/b/1.woff) format('woff');
		}
	`)

	got, err := newTestExtractor(t).Extract(input)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	var families []string
	for _, d := range got {
		families = append(families, d.Family)
	}
	if diff := cmp.Diff([]string{"A", "B"}, families); diff != "" {
		t.Errorf("families mismatch (-want +got):\n%s", diff)
	}
	if got[1].Weight != "700" {
		t.Errorf("Weight = %q, want 700", got[1].Weight)
	}
}

func TestExtract_PropertiesOutOfOrderAreSkipped(t *testing.T) {
	input := `@font-face { font-family: 'X'; font-weight: 400; font-style: normal; src: url(https://fonts.gstatic.com/x.woff2) format('woff2'); }`

	_, err := newTestExtractor(t).Extract(input)
	if !errors.Is(err, ErrNoFontFaces) {
		t.Errorf("expected ErrNoFontFaces, got %v", err)
	}
}

func TestExtract_NoMatches(t *testing.T) {
	for _, input := range []string{"", "body { color: red; }", "@font-face { font-family: 'X'; src: local(X); }"} {
		_, err := newTestExtractor(t).Extract(input)
		if !errors.Is(err, ErrNoFontFaces) {
			t.Errorf("Extract(%q) expected ErrNoFontFaces, got %v", input, err)
		}
	}
}

func TestExtract_HostIsLiteral(t *testing.T) {
	// dots in host must not match arbitrary characters
	input := `@font-face { font-family: 'X'; src: url(https://fontsXgstatic.com/x.woff2) format('woff2'); }`

	_, err := newTestExtractor(t).Extract(input)
	if !errors.Is(err, ErrNoFontFaces) {
		t.Errorf("expected ErrNoFontFaces, got %v", err)
	}
}

func TestExtract_CustomHost(t *testing.T) {
	e, err := NewExtractor("http://127.0.0.1:8080/fonts/", testDefaults, nil)
	if err != nil {
		t.Fatalf("NewExtractor() error = %v", err)
	}
	input := `@font-face { font-family: 'X'; src: url(http://127.0.0.1:8080/fonts/x.ttf) format('truetype'); }`

	got, err := e.Extract(input)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got[0].URL != "http://127.0.0.1:8080/fonts/x.ttf" {
		t.Errorf("URL = %q", got[0].URL)
	}
}

func TestNewExtractor_Invalid(t *testing.T) {
	if _, err := NewExtractor("", testDefaults, nil); err == nil {
		t.Error("expected error for empty host")
	}
	if _, err := NewExtractor(testHost, config.DefaultsConfig{Style: "normal"}, nil); err == nil {
		t.Error("expected error for incomplete defaults")
	}
}
