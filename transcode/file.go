package transcode

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/image/font/sfnt"
)

// Error describes failed conversion of a font file.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("unable to transcode %q: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// File loads font from src, re-encodes it to WOFF2 and saves result to dst.
// On failure dst is not left behind. Fonts which x/image/font/sfnt cannot
// parse are still converted, with a warning.
func File(src, dst string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return &Error{Path: src, Err: err}
	}
	if _, err := sfnt.Parse(data); err != nil {
		log.Warn("Font may be unusable", zap.String("path", src), zap.Error(err))
	}
	out, err := ToWOFF2(data)
	if err != nil {
		return &Error{Path: src, Err: err}
	}
	if err := os.WriteFile(dst, out, 0644); err != nil {
		os.Remove(dst)
		return &Error{Path: dst, Err: err}
	}
	return nil
}
