package graph

import "github.com/djcass44/pkgwatch/pkg/debian"

// IsOutdated decides whether a source needs to be rebuilt.
//
// Repository data takes precedence: the source is outdated if the
// repository has a newer version of any binary it builds. Without
// repository data, the source is outdated unless its version is
// newer than one of its released archives. Sources with no data or
// an unknown version are always outdated.
func IsOutdated(sp *debian.SourcePackage) bool {
	if sp.Version == nil {
		return true
	}
	if len(sp.Repository) > 0 {
		for _, v := range sp.Repository {
			if v.GreaterThan(*sp.Version) {
				return true
			}
		}
		return false
	}
	if len(sp.Archive) > 0 {
		for _, v := range sp.Archive {
			if sp.Version.GreaterThan(v) {
				return false
			}
		}
		return true
	}
	return true
}
