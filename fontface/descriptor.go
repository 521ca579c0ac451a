// Package fontface extracts font descriptors from web font stylesheets.
package fontface

import (
	"path/filepath"
	"strings"

	"fontget/common"
	"fontget/config"
	"fontget/css"
)

// Descriptor is one @font-face rule of the source stylesheet.
type Descriptor struct {
	Family  string
	Style   string
	Weight  string
	Display string
	URL     string
	Format  common.FontFormat

	// Local is file name (relative to output directory) of downloaded
	// binary, empty until resolved.
	Local string
}

// LocalName derives file name for the binary from the last path segment of
// its URL. Query string characters are replaced so name is usable on any
// file system.
func (d Descriptor) LocalName() string {
	name := d.URL
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.NewReplacer("?", "_", "&", "_").Replace(name)
	return config.CleanFileName(name)
}

// Resolved returns copy of descriptor pointing to local file.
func (d Descriptor) Resolved(local string, format common.FontFormat) Descriptor {
	d.Local = local
	d.Format = format
	return d
}

// TranscodedName returns name of woff2 sibling of local file.
func TranscodedName(local string) string {
	return strings.TrimSuffix(local, filepath.Ext(local)) + common.FontFormatWoff2.Ext()
}

// FontFace converts resolved descriptor into @font-face declaration.
func (d Descriptor) FontFace() css.FontFace {
	return css.FontFace{
		Family:  d.Family,
		Src:     css.SrcValue(d.Local, d.Format.String()),
		Style:   d.Style,
		Weight:  d.Weight,
		Display: d.Display,
	}
}
