// Package localize downloads fonts referenced by descriptors and writes
// stylesheet pointing to local copies.
package localize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fontget/common"
	"fontget/css"
	"fontget/fontface"
	"fontget/transcode"
)

const (
	// StylesheetName is name of generated stylesheet inside output directory.
	StylesheetName   = "local_fonts.css"
	stylesheetHeader = "Generated CSS for local font files"
)

// Downloader retrieves font binaries.
type Downloader interface {
	Bytes(ctx context.Context, url string) ([]byte, error)
}

// TranscodeFunc converts font file src into woff2 file dst.
type TranscodeFunc func(src, dst string) error

// Pipeline localizes fonts.
type Pipeline struct {
	downloader Downloader
	transcode  TranscodeFunc
	workers    int
	log        *zap.Logger
}

// Option customizes Pipeline.
type Option func(*Pipeline)

// WithTranscoder replaces default woff2 transcoder.
func WithTranscoder(fn TranscodeFunc) Option {
	return func(p *Pipeline) {
		p.transcode = fn
	}
}

// New creates pipeline downloading up to workers files at once.
func New(downloader Downloader, workers int, log *zap.Logger, opts ...Option) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pipeline{
		downloader: downloader,
		workers:    max(workers, 1),
		log:        log.Named("localize"),
	}
	p.transcode = func(src, dst string) error {
		return transcode.File(src, dst, p.log)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// job is a single unique font URL to be localized.
type job struct {
	url    string
	format common.FontFormat
	name   string // name binary is downloaded as
	final  string // name stylesheet references

	failure *Failure
}

// Run localizes descriptors into dir and writes stylesheet there. Per-file
// failures are collected in report, returned error is only set when
// stylesheet could not be written or ctx was cancelled. Nothing is created
// for empty input.
func (p *Pipeline) Run(ctx context.Context, descriptors []fontface.Descriptor, dir string) (*Report, error) {
	rpt := &Report{}
	if len(descriptors) == 0 {
		return rpt, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}

	jobs, order := p.plan(descriptors)

	g := errgroup.Group{}
	g.SetLimit(p.workers)
	for _, j := range jobs {
		g.Go(func() error {
			p.process(ctx, j, dir)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("font localization interrupted: %w", err)
	}

	sheet := &css.Stylesheet{Header: stylesheetHeader}
	for i, d := range descriptors {
		j := order[i]
		if j.failure != nil {
			rpt.Failed = append(rpt.Failed, *j.failure)
			continue
		}
		r := d.Resolved(j.final, j.resultFormat())
		rpt.Resolved = append(rpt.Resolved, r)
		sheet.AddFontFace(r.FontFace())
	}

	path := filepath.Join(dir, StylesheetName)
	if err := writeAtomic(path, sheet); err != nil {
		return nil, fmt.Errorf("unable to write stylesheet: %w", err)
	}
	rpt.Stylesheet = path

	p.log.Info("Stylesheet generated", zap.String("path", path), zap.Int("resolved", len(rpt.Resolved)), zap.Int("failed", len(rpt.Failed)))
	return rpt, nil
}

// plan builds unique jobs keeping discovery order. order[i] is job for
// descriptors[i]. Different URLs which end up with the same local name get
// numeric suffixes.
func (p *Pipeline) plan(descriptors []fontface.Descriptor) ([]*job, []*job) {
	var (
		jobs    []*job
		order   = make([]*job, len(descriptors))
		byURL   = make(map[string]*job)
		claimed = make(map[string]bool)
	)

	for i, d := range descriptors {
		if j, ok := byURL[d.URL]; ok {
			order[i] = j
			continue
		}

		base := d.LocalName()
		name, final := fileNames(base, d.Format)
		for n := 1; claimed[name] || claimed[final]; n++ {
			ext := filepath.Ext(base)
			name, final = fileNames(strings.TrimSuffix(base, ext)+"-"+strconv.Itoa(n)+ext, d.Format)
		}
		claimed[name], claimed[final] = true, true
		if final != base && final != fontface.TranscodedName(base) {
			p.log.Warn("Local name is already taken, renaming", zap.String("url", d.URL), zap.String("name", final))
		}

		j := &job{url: d.URL, format: d.Format, name: name, final: final}
		byURL[d.URL] = j
		order[i] = j
		jobs = append(jobs, j)
	}
	return jobs, order
}

// fileNames returns name binary is downloaded as and name stylesheet refers
// to. Legacy fonts are downloaded under temporary name which never
// coincides with transcoded one.
func fileNames(local string, format common.FontFormat) (string, string) {
	if !format.Legacy() {
		return local, local
	}
	final := fontface.TranscodedName(local)
	if local == final {
		local += format.Ext()
	}
	return local, final
}

func (j *job) resultFormat() common.FontFormat {
	if j.format.Legacy() {
		return common.FontFormatWoff2
	}
	return j.format
}

func (j *job) fail(stage common.Stage, err error) {
	j.failure = &Failure{URL: j.url, Stage: stage, Err: err}
}

// process downloads single font and transcodes it when necessary.
// Outcome is recorded in the job.
func (p *Pipeline) process(ctx context.Context, j *job, dir string) {
	log := p.log.With(zap.String("url", j.url))

	data, err := p.downloader.Bytes(ctx, j.url)
	if err != nil {
		log.Error("Unable to download font", zap.Error(err))
		j.fail(common.StageDownload, err)
		return
	}
	p.sniff(log, data, j.format)

	path := filepath.Join(dir, j.name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Error("Unable to store font", zap.Error(err))
		j.fail(common.StageStore, err)
		return
	}
	log.Debug("Font stored", zap.String("path", path), zap.Int("bytes", len(data)))

	if !j.format.Legacy() {
		return
	}

	dst := filepath.Join(dir, j.final)
	err = p.transcode(path, dst)
	if rerr := os.Remove(path); rerr != nil {
		log.Warn("Unable to remove temporary font file", zap.String("path", path), zap.Error(rerr))
	}
	if err != nil {
		log.Error("Unable to transcode font", zap.Error(err))
		j.fail(common.StageTranscode, err)
		return
	}
	log.Debug("Font transcoded", zap.String("path", dst))
}

// sniff checks actual container of downloaded data, mismatch is only
// reported as font integrity is not verified.
func (p *Pipeline) sniff(log *zap.Logger, data []byte, format common.FontFormat) {
	kind, err := filetype.Match(data)
	switch {
	case err != nil:
		log.Warn("Unable to detect font container", zap.Error(err))
	case kind == filetype.Unknown:
		log.Warn("Unknown font container", zap.Stringer("declared", format))
	case kind.Extension != format.SniffName():
		log.Warn("Font container does not match declared format", zap.Stringer("declared", format), zap.String("detected", kind.Extension))
	}
}

// writeAtomic writes stylesheet to temporary sibling of path and renames it.
func writeAtomic(path string, sheet *css.Stylesheet) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := sheet.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
