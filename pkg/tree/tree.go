package tree

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/djcass44/pkgwatch/pkg/debian"
	"github.com/go-logr/logr"
)

// vcsDirs are never searched for packages.
var vcsDirs = []string{".git", ".hg", ".bzr", ".svn"}

const extDsc = ".dsc"

var ErrNotFound = errors.New("source package not found")

// Tree is the set of source packages found below a directory.
type Tree struct {
	// Sources is sorted by path.
	Sources []*debian.SourcePackage
	Dscs    []debian.Dsc
	// Errors holds the problems with individual packages
	// that did not stop the scan.
	Errors []error
}

// Scan searches root for unpacked source packages and released
// source descriptors. A directory containing both debian/control
// and debian/changelog is a package and is not searched further.
func Scan(ctx context.Context, fsys fs.FS, root string) (*Tree, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("root", root)
	log.V(1).Info("scanning tree")

	t := &Tree{}
	byName := map[string]int{}
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			log.V(1).Info("unable to read path", "path", p, "err", err)
			t.Errors = append(t.Errors, err)
			return nil
		}
		if d.IsDir() {
			if slices.Contains(vcsDirs, d.Name()) {
				return fs.SkipDir
			}
			if !isPackage(fsys, p) {
				return nil
			}
			sp, err := debian.ReadSourceDir(ctx, fsys, p)
			if err != nil {
				log.V(1).Info("unable to read package", "path", p, "err", err)
				t.Errors = append(t.Errors, err)
				return fs.SkipDir
			}
			if i, ok := byName[sp.Name]; ok {
				prev := t.Sources[i]
				log.V(1).Info("source is declared more than once", "source", sp.Name, "previous", prev.Path, "path", p)
				t.Errors = append(t.Errors, &debian.DuplicateSourceError{Name: sp.Name, Paths: []string{prev.Path, sp.Path}})
				t.Sources[i] = sp
				return fs.SkipDir
			}
			byName[sp.Name] = len(t.Sources)
			t.Sources = append(t.Sources, sp)
			return fs.SkipDir
		}
		if strings.HasSuffix(d.Name(), extDsc) {
			dsc, err := readDsc(fsys, p)
			if err != nil {
				log.V(1).Info("unable to read source descriptor", "path", p, "err", err)
				t.Errors = append(t.Errors, err)
				return nil
			}
			t.Dscs = append(t.Dscs, *dsc)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	slices.SortFunc(t.Sources, func(a, b *debian.SourcePackage) int {
		return strings.Compare(a.Path, b.Path)
	})
	debian.AttachArchives(t.Sources, t.Dscs)

	log.V(1).Info("finished scanning tree", "sources", len(t.Sources), "dscs", len(t.Dscs), "errors", len(t.Errors))
	return t, nil
}

func isPackage(fsys fs.FS, dir string) bool {
	for _, name := range []string{debian.FileControl, debian.FileChangelog} {
		if _, err := fs.Stat(fsys, path.Join(dir, debian.DirDebian, name)); err != nil {
			return false
		}
	}
	return true
}

func readDsc(fsys fs.FS, p string) (*debian.Dsc, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return debian.ReadDsc(f, p)
}

// Source returns the package with the given name.
func (t *Tree) Source(name string) (*debian.SourcePackage, error) {
	for _, sp := range t.Sources {
		if sp.Name == name {
			return sp, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}
