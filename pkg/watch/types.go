package watch

import "net/url"

// SupportedVersion is the only watch file format that
// can be parsed.
const SupportedVersion = 3

// Rule is a single line of a debian/watch file describing where
// upstream releases can be found.
type Rule struct {
	// Version is the format version of the file the
	// rule was read from.
	Version int
	Options map[string]string

	// Template is the URL exactly as written in the watch file.
	Template string
	// URL holds the scheme and host of the template.
	URL *url.URL
	// PathPrefix is the directory part of the template. Segments
	// containing a group are resolved from directory listings.
	PathPrefix string
	// FilenamePattern is the final path segment. Its groups
	// joined by "." give the upstream version.
	FilenamePattern string

	Regex  string
	Action string
}
