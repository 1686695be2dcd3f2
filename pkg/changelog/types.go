package changelog

import "github.com/djcass44/pkgwatch/pkg/version"

// Entry is the header of a single changelog entry, e.g.
//
//	hello (2.10-3) unstable; urgency=medium
type Entry struct {
	Source        string
	Version       version.Version
	Distributions []string
	Urgency       string
}
