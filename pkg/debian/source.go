package debian

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"

	"github.com/djcass44/pkgwatch/pkg/changelog"
	"github.com/djcass44/pkgwatch/pkg/control"
	"github.com/djcass44/pkgwatch/pkg/version"
	"github.com/djcass44/pkgwatch/pkg/watch"
	"github.com/go-logr/logr"
)

const (
	DirDebian     = "debian"
	FileControl   = "control"
	FileChangelog = "changelog"
	FileWatch     = "watch"
)

var (
	ErrNoSource       = errors.New("control file does not contain a source paragraph")
	ErrOrigNotFound   = errors.New("original tarball not found")
	ErrVersionUnknown = errors.New("package version is unknown")
)

// ReadSourceDir reads the debian directory of the package in dir.
// The control file is required. Failures reading the changelog
// or watch file are recorded on the package rather than returned.
func ReadSourceDir(ctx context.Context, fsys fs.FS, dir string) (*SourcePackage, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("dir", dir)
	log.V(3).Info("reading source package")

	paragraphs, err := readFile(fsys, path.Join(dir, DirDebian, FileControl), control.Parse)
	if err != nil {
		return nil, fmt.Errorf("reading control file in %s: %w", dir, err)
	}
	if len(paragraphs) == 0 || paragraphs[0].Get("Source") == "" {
		return nil, fmt.Errorf("reading control file in %s: %w", dir, ErrNoSource)
	}
	sp := &SourcePackage{
		Name:     paragraphs[0].Get("Source"),
		Path:     dir,
		Source:   paragraphs[0],
		Binaries: paragraphs[1:],
	}
	for _, key := range control.BuildFields {
		relations, err := sp.Source.Relations(key)
		if err != nil {
			return nil, fmt.Errorf("reading %s of %s: %w", key, sp.Name, err)
		}
		sp.BuildDepends = append(sp.BuildDepends, relations...)
	}
	for i := range sp.Binaries {
		if name := sp.Binaries[i].Get("Package"); name != "" {
			sp.Provides = append(sp.Provides, name)
		}
	}
	log = log.WithValues("source", sp.Name)

	v, err := readFile(fsys, path.Join(dir, DirDebian, FileChangelog), changelog.ReadVersion)
	if err != nil {
		log.V(1).Info("unable to read package version", "err", err)
		sp.VersionErr = err
	} else {
		sp.Version = &v
	}

	rules, err := readFile(fsys, path.Join(dir, DirDebian, FileWatch), watch.Parse)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.V(4).Info("package has no watch file")
	case err != nil:
		log.V(1).Info("unable to read watch file", "err", err)
		sp.WatchErr = err
	default:
		sp.Watch = rules
	}
	log.V(2).Info("read source package", "version", sp.Version, "binaries", len(sp.Provides), "needs", len(sp.BuildDepends))
	return sp, nil
}

func readFile[T any](fsys fs.FS, name string, parse func(r io.Reader) (T, error)) (T, error) {
	f, err := fsys.Open(name)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return parse(f)
}

// AttachArchives sets the archive history of each source from the
// descriptors that name it. Existing history is replaced.
func AttachArchives(sources []*SourcePackage, dscs []Dsc) {
	byName := map[string][]version.Version{}
	for _, d := range dscs {
		byName[d.Source] = append(byName[d.Source], d.Version)
	}
	for _, sp := range sources {
		versions := slices.Clone(byName[sp.Name])
		version.SortDescending(versions)
		sp.Archive = versions
	}
}

// FindOrig locates the original upstream tarball of the package,
// which is expected to be a sibling of the package directory.
func FindOrig(fsys fs.FS, sp *SourcePackage) (string, error) {
	if sp.Version == nil {
		return "", ErrVersionUnknown
	}
	pattern := path.Join(path.Dir(sp.Path), sp.Name+"_"+sp.Version.Upstream+".orig.*")
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return "", fmt.Errorf("searching for %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", ErrOrigNotFound
	}
	return matches[0], nil
}

// Needs returns the binary packages named by the build
// relationships of the source.
func (sp *SourcePackage) Needs() []string {
	var out []string
	for _, r := range sp.BuildDepends {
		out = append(out, r.Names()...)
	}
	return out
}
