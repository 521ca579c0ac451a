package fontface

import (
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"fontget/common"
	"fontget/config"
	"fontget/css"
)

// ErrNoFontFaces is returned when stylesheet has no usable @font-face rules.
// This is not a failure, there is simply nothing to do.
var ErrNoFontFaces = errors.New("no font-face definitions found")

// rulePattern is the shape of @font-face rule served by Google Fonts. Optional
// properties must go in this order and src must have single url() pointing
// to font host. Placeholder is replaced with quoted font host.
const rulePattern = `(?i)@font-face\s*\{\s*` +
	`font-family:\s*'([^']+)';\s*` +
	`(font-style:\s*(\w+);)?\s*` +
	`(font-weight:\s*([\w\d]+);)?\s*` +
	`(font-display:\s*(\w+);)?\s*` +
	`src:\s*url\((%s[^)]+)\)\s*format\('([^']+)'\);`

const (
	groupFamily  = 1
	groupStyle   = 3
	groupWeight  = 5
	groupDisplay = 7
	groupURL     = 8
	groupFormat  = 9
)

// Extractor finds @font-face rules referencing font host.
type Extractor struct {
	pattern  *regexp.Regexp
	defaults config.DefaultsConfig
	log      *zap.Logger
}

// NewExtractor prepares extractor for rules with sources under host.
func NewExtractor(host string, defaults config.DefaultsConfig, log *zap.Logger) (*Extractor, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(host) == 0 {
		return nil, errors.New("font host must be specified")
	}
	if defaults.Style == "" || defaults.Weight == "" || defaults.Display == "" {
		return nil, fmt.Errorf("incomplete font-face defaults: %+v", defaults)
	}
	re, err := regexp.Compile(fmt.Sprintf(rulePattern, regexp.QuoteMeta(host)))
	if err != nil {
		return nil, fmt.Errorf("unable to prepare font-face pattern: %w", err)
	}
	return &Extractor{pattern: re, defaults: defaults, log: log.Named("extract")}, nil
}

// Extract returns descriptors in stylesheet order. When nothing matches
// ErrNoFontFaces is returned.
func (e *Extractor) Extract(text string) ([]Descriptor, error) {
	var res []Descriptor
	matched := make(map[string]bool)

	for _, m := range e.pattern.FindAllStringSubmatch(text, -1) {
		format, err := common.ParseFontFormat(m[groupFormat])
		if err != nil {
			e.log.Debug("Skipping font-face with unsupported format", zap.String("family", m[groupFamily]), zap.String("url", m[groupURL]), zap.Error(err))
			continue
		}
		d := Descriptor{
			Family:  m[groupFamily],
			Style:   orDefault(m[groupStyle], e.defaults.Style),
			Weight:  orDefault(m[groupWeight], e.defaults.Weight),
			Display: orDefault(m[groupDisplay], e.defaults.Display),
			URL:     m[groupURL],
			Format:  format,
		}
		matched[d.URL] = true
		res = append(res, d)
	}

	e.reportSkipped(text, matched)

	if len(res) == 0 {
		return nil, ErrNoFontFaces
	}
	return res, nil
}

// reportSkipped uses grammar parser to tell user about @font-face rules
// which do not have expected shape.
func (e *Extractor) reportSkipped(text string, matched map[string]bool) {
	sheet := css.NewParser(e.log).Parse([]byte(text), "source stylesheet")

	if imports := sheet.Imports(); len(imports) > 0 {
		e.log.Warn("Stylesheet imports are not followed", zap.Strings("imports", imports))
	}

	faces := sheet.FontFaces()
	skipped := 0
	for _, ff := range faces {
		found := false
		for _, src := range ff.Sources() {
			if matched[src.URL] {
				found = true
				break
			}
		}
		if !found {
			skipped++
			e.log.Debug("Skipping font-face", zap.String("family", ff.Family), zap.String("src", ff.Src))
		}
	}
	e.log.Debug("Font-face rules", zap.Int("total", len(faces)), zap.Int("skipped", skipped), zap.Int("other rules", sheet.Skipped))
	if skipped > 0 {
		e.log.Warn("Some font-face rules were not recognized", zap.Int("count", skipped))
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
