package debian

import (
	"github.com/djcass44/pkgwatch/pkg/control"
	"github.com/djcass44/pkgwatch/pkg/version"
	"github.com/djcass44/pkgwatch/pkg/watch"
)

// SourcePackage is an unpacked source package read
// from its debian directory.
type SourcePackage struct {
	Name string
	// Version is nil when the changelog could not be read,
	// in which case VersionErr holds the reason.
	Version    *version.Version
	VersionErr error

	BuildDepends []control.Relation
	// Provides holds the names of the binary packages
	// built from this source.
	Provides []string
	Path     string

	Watch    []watch.Rule
	WatchErr error

	// Archive holds the versions of released .dsc files
	// for this source, newest first.
	Archive []version.Version
	// Repository holds the versions of binary packages built
	// from this source that are present in a repository.
	Repository []version.Version

	Source   control.Paragraph
	Binaries []control.Paragraph
}

// FileRef is a file listed by a source descriptor.
type FileRef struct {
	Checksum string
	Size     int64
	Name     string
}

// Dsc is a released source descriptor.
type Dsc struct {
	Source   string
	Version  version.Version
	Binaries []string
	// Files holds the md5 checksums from the Files field.
	Files []FileRef
	// Sha256 holds the Checksums-Sha256 field.
	Sha256 []FileRef
	Path   string
}

// indexEntry is a single paragraph of a Packages file.
type indexEntry struct {
	Package      string
	Source       string
	Version      string
	Architecture string
	Filename     string
	Sha256       string `control:"SHA256"`
}

// Package is a binary package record from a repository index.
type Package struct {
	Package      string
	Source       string
	Version      version.Version
	Architecture string
	Filename     string
	Sha256       string
}

// Record is the version of a binary package
// observed in a repository.
type Record struct {
	Binary  string
	Version version.Version
}

type Index struct {
	packages []Package
	source   string
}
