package version

// Version is a parsed Debian package version.
//
// https://www.debian.org/doc/debian-policy/ch-controlfields.html#version
type Version struct {
	Epoch    uint
	Upstream string
	// Revision is empty for native packages. An empty
	// revision compares equal to "0".
	Revision string
}
