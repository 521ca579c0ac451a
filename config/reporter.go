package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/maruel/natural"
	"go.uber.org/multierr"

	"fontget/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty report. When destination cannot be created report
// goes to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{entries: make(map[string]entry), file: f}, nil
}

// entry is either in-memory data or path to file or directory which is read
// when archive is written.
type entry struct {
	source string
	data   []byte
	stamp  time.Time
}

func (e entry) kind() string {
	if e.source == "" {
		return "data"
	}
	return e.source
}

// Report collects debug information: logs, configuration, fetched and
// generated files. Methods are safe to call on nil Report, which means
// reporting was not requested. Report is not safe for concurrent use.
type Report struct {
	entries map[string]entry
	file    *os.File
}

// Close writes archive with everything stored so far.
func (r *Report) Close() (err error) {
	if r == nil || r.file == nil {
		return nil
	}
	defer func() {
		err = multierr.Append(err, r.file.Close())
	}()

	arc := zip.NewWriter(r.file)
	if err := r.write(arc); err != nil {
		return multierr.Append(err, arc.Close())
	}
	return arc.Close()
}

// Name returns absolute name of archive file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store remembers file or directory to be put into archive under name.
// Content is read when report is closed, absent paths are ignored.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if p, err := filepath.Abs(path); err == nil {
		path = p
	}
	if old, exists := r.entries[name]; exists && old.source != path {
		panic(fmt.Sprintf("report entry [%s] already refers to %s, attempt to replace it with %s", name, old.kind(), path))
	}
	r.entries[name] = entry{source: path}
}

// StoreData puts copy of data into archive under name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	if old, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("report entry [%s] already refers to %s", name, old.kind()))
	}
	r.entries[name] = entry{data: bytes.Clone(data), stamp: time.Now()}
}

func (r *Report) write(arc *zip.Writer) error {
	// "font-2" goes before "font-10"
	names := slices.Collect(maps.Keys(r.entries))
	sort.Sort(natural.StringSlice(names))
	now := time.Now()

	manifest := &bytes.Buffer{}
	fmt.Fprintf(manifest, "%s %s (%s)\n", misc.GetAppName(), misc.GetVersion(), misc.GetGitHash())
	for _, name := range names {
		fmt.Fprintf(manifest, "%s\t%s\n", name, r.entries[name].kind())
	}
	if err := addFile(arc, "MANIFEST", now, manifest); err != nil {
		return err
	}

	for _, name := range names {
		e := r.entries[name]
		if e.source == "" {
			if err := addFile(arc, name, e.stamp, bytes.NewReader(e.data)); err != nil {
				return err
			}
			continue
		}
		if err := addPath(arc, name, e.source); err != nil {
			return err
		}
	}
	return nil
}

func addFile(arc *zip.Writer, name string, stamp time.Time, src io.Reader) error {
	w, err := arc.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: stamp})
	if err != nil {
		return fmt.Errorf("unable to add %s to report: %w", name, err)
	}
	if _, err = io.Copy(w, src); err != nil {
		return fmt.Errorf("unable to add %s to report: %w", name, err)
	}
	return nil
}

func addPath(arc *zip.Writer, name, root string) error {
	if _, err := os.Stat(root); err != nil {
		return nil
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			// directories, links, sockets, etc.
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		// single file is stored under name itself
		entryName := name
		if rel != "." {
			entryName = path.Join(name, filepath.ToSlash(rel))
		}
		return addFile(arc, entryName, info.ModTime(), f)
	})
}
