package version

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	debversion "pault.ag/go/debian/version"
)

var (
	ErrEmpty         = errors.New("version string is empty")
	ErrEmptyUpstream = errors.New("upstream version is empty")
)

// Parse splits a version string into its epoch, upstream
// version and revision.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, ErrEmpty
	}
	var v Version

	// the epoch is everything before the first colon, as long
	// as that colon comes before the revision separator
	if i := strings.Index(s, ":"); i >= 0 && (strings.LastIndex(s, "-") < 0 || i < strings.LastIndex(s, "-")) {
		epoch, err := strconv.ParseUint(s[:i], 10, 0)
		if err != nil {
			return Version{}, fmt.Errorf("parsing epoch %q: %w", s[:i], err)
		}
		v.Epoch = uint(epoch)
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "-"); i >= 0 {
		v.Revision = s[i+1:]
		s = s[:i]
	}
	if s == "" {
		return Version{}, ErrEmptyUpstream
	}
	if strings.ContainsAny(s, " \t\n") || strings.ContainsAny(v.Revision, " \t\n") {
		return Version{}, fmt.Errorf("version contains whitespace: %q", s)
	}
	v.Upstream = s
	return v, nil
}

// MustParse is like Parse but panics if the version
// cannot be parsed.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	sb := strings.Builder{}
	if v.Epoch > 0 {
		sb.WriteString(strconv.FormatUint(uint64(v.Epoch), 10))
		sb.WriteString(":")
	}
	sb.WriteString(v.Upstream)
	if v.Revision != "" {
		sb.WriteString("-")
		sb.WriteString(v.Revision)
	}
	return sb.String()
}

// IsNative returns true if the version has no Debian revision.
func (v Version) IsNative() bool {
	return v.Revision == ""
}

func (v Version) Compare(other Version) int {
	return Compare(v, other)
}

func (v Version) Equal(other Version) bool {
	return Compare(v, other) == 0
}

func (v Version) LessThan(other Version) bool {
	return Compare(v, other) < 0
}

func (v Version) GreaterThan(other Version) bool {
	return Compare(v, other) > 0
}

// Compare returns -1, 0 or 1 if a is lower, equal to or
// higher than b, using the dpkg ordering rules.
func Compare(a, b Version) int {
	return sign(debversion.Compare(a.deb(), b.deb()))
}

// deb converts v into the form understood by pault.ag/go/debian.
// Upstream versions may start with a letter.
func (v Version) deb() debversion.Version {
	return debversion.Version{
		Epoch:    v.Epoch,
		Version:  v.Upstream,
		Revision: v.Revision,
	}
}

func sign(i int) int {
	switch {
	case i < 0:
		return -1
	case i > 0:
		return 1
	}
	return 0
}

// Sort orders versions from lowest to highest.
func Sort(vs []Version) {
	slices.SortStableFunc(vs, Compare)
}

// SortDescending orders versions from highest to lowest.
func SortDescending(vs []Version) {
	slices.SortStableFunc(vs, func(a, b Version) int {
		return Compare(b, a)
	})
}

// Max returns the highest version. The first occurrence wins
// when several versions are equal.
func Max(vs ...Version) (Version, bool) {
	if len(vs) == 0 {
		return Version{}, false
	}
	best := vs[0]
	for _, v := range vs[1:] {
		if Compare(v, best) > 0 {
			best = v
		}
	}
	return best, true
}
