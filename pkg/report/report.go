package report

import (
	"sort"
	"time"

	"github.com/djcass44/pkgwatch/pkg/debian"
	"github.com/djcass44/pkgwatch/pkg/version"
	"github.com/google/uuid"
)

func New(name string) *Report {
	return &Report{
		ID:            uuid.NewString(),
		Name:          name,
		ReportVersion: ReportVersion,
		Generated:     time.Now().UTC(),
		Packages:      map[string]Entry{},
	}
}

// AddSource records the state of a source package.
func (r *Report) AddSource(sp *debian.SourcePackage, outdated bool) {
	e := Entry{
		Name:       sp.Name,
		Path:       sp.Path,
		Outdated:   outdated,
		Repository: versionStrings(sp.Repository),
		Archive:    versionStrings(sp.Archive),
	}
	if sp.Version != nil {
		e.Version = sp.Version.String()
	}
	if prev, ok := r.Packages[sp.Name]; ok {
		e.Orig = prev.Orig
		e.Upstream = prev.Upstream
	}
	r.Packages[sp.Name] = e
}

// SetUpstream records the upstream release of a package
// that has already been added.
func (r *Report) SetUpstream(name string, u *Upstream) {
	e, ok := r.Packages[name]
	if !ok {
		return
	}
	e.Upstream = u
	r.Packages[name] = e
}

// SetOrig records the upstream tarball of a package
// that has already been added.
func (r *Report) SetOrig(name, path string) {
	e, ok := r.Packages[name]
	if !ok {
		return
	}
	e.Orig = path
	r.Packages[name] = e
}

func (r *Report) AddError(err error) {
	r.Errors = append(r.Errors, err.Error())
}

// SortedKeys returns package names
// sorted alphabetically.
func (r *Report) SortedKeys() []string {
	pkgKeys := make([]string, 0, len(r.Packages))
	for k := range r.Packages {
		pkgKeys = append(pkgKeys, k)
	}
	sort.Strings(pkgKeys)
	return pkgKeys
}

// Outdated returns the names of the outdated
// packages sorted alphabetically.
func (r *Report) Outdated() []string {
	var out []string
	for _, k := range r.SortedKeys() {
		if r.Packages[k].Outdated {
			out = append(out, k)
		}
	}
	return out
}

func versionStrings(vs []version.Version) []string {
	if len(vs) == 0 {
		return nil
	}
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}
