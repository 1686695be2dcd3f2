package report

import "time"

const ReportVersion = 1

type Report struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	ReportVersion int              `json:"reportVersion"`
	Generated     time.Time        `json:"generated"`
	Packages      map[string]Entry `json:"packages"`
	// Order is the build order of the outdated packages.
	Order  []string `json:"order,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

type Entry struct {
	Name       string    `json:"-"`
	Path       string    `json:"path"`
	Version    string    `json:"version,omitempty"`
	Outdated   bool      `json:"outdated"`
	Repository []string  `json:"repository,omitempty"`
	Archive    []string  `json:"archive,omitempty"`
	// Orig is the upstream tarball next to the package directory.
	Orig     string    `json:"orig,omitempty"`
	Upstream *Upstream `json:"upstream,omitempty"`
}

type Upstream struct {
	Version  string `json:"version"`
	Resolved string `json:"resolved"`
	// Integrity is only known for releases
	// found on the local filesystem.
	Integrity string `json:"integrity,omitempty"`
	Error     string `json:"error,omitempty"`
}
