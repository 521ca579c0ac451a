// Package common holds enums shared between extraction, transcoding and
// stylesheet generation.
package common

//go:generate go tool go-enum --marshal --names --nocomments=false

// Font container format as named by CSS format() hint.
// ENUM(woff2, woff, truetype)
type FontFormat int

// Ext returns file name extension (with dot) used for the format.
func (f FontFormat) Ext() string {
	switch f {
	case FontFormatWoff2:
		return ".woff2"
	case FontFormatWoff:
		return ".woff"
	case FontFormatTruetype:
		return ".ttf"
	default:
		// this should never happen
		panic("unsupported font format requested")
	}
}

// Legacy reports whether binaries in this format are transcoded to woff2
// before being referenced from the generated stylesheet.
func (f FontFormat) Legacy() bool {
	return f == FontFormatTruetype
}

// SniffName returns name of the matcher h2non/filetype uses for the format.
func (f FontFormat) SniffName() string {
	switch f {
	case FontFormatTruetype:
		return "ttf"
	default:
		return f.String()
	}
}

// Step of font localization at which a file failed.
// ENUM(download, transcode, store)
type Stage int
