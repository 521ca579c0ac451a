package localize

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"fontget/common"
	"fontget/fontface"
)

// ErrPartial marks run in which stylesheet was written but some fonts were
// not localized.
var ErrPartial = errors.New("some fonts were not localized")

// Failure describes descriptor which could not be localized.
type Failure struct {
	URL   string
	Stage common.Stage
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", f.Stage, f.URL, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report is outcome of a pipeline run.
type Report struct {
	// Resolved descriptors in input order, Local is set for every one.
	Resolved []fontface.Descriptor
	// Failed descriptors in input order.
	Failed []Failure
	// Stylesheet is path of generated stylesheet, empty if nothing was written.
	Stylesheet string
}

// Complete reports whether every descriptor was localized.
func (r *Report) Complete() bool {
	return len(r.Failed) == 0
}

// Err returns nil for complete run. Otherwise returned error matches
// ErrPartial and carries every failure.
func (r *Report) Err() error {
	if r.Complete() {
		return nil
	}
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, f)
	}
	return fmt.Errorf("%w: %d of %d: %w", ErrPartial, len(r.Failed), len(r.Failed)+len(r.Resolved), multierr.Combine(errs...))
}
