package changelog

import (
	"errors"
	"strings"
	"testing"

	"github.com/djcass44/pkgwatch/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const changelogFile = `package (1.2.3-4) experimental; urgency=low

  * A new version

 -- Debian Developer <example@debian.org>  Wed, 02 Jan 2013 03:45:57 +0000

package (1.2.3-3) unstable; urgency=medium

  * An older version

 -- Debian Developer <example@debian.org>  Tue, 01 Jan 2013 03:45:57 +0000
`

func TestReadFirst(t *testing.T) {
	entry, err := ReadFirst(strings.NewReader(changelogFile))
	require.NoError(t, err)

	assert.EqualValues(t, "package", entry.Source)
	assert.EqualValues(t, "1.2.3-4", entry.Version.String())
	assert.EqualValues(t, []string{"experimental"}, entry.Distributions)
	assert.EqualValues(t, "low", entry.Urgency)
}

func TestReadVersion(t *testing.T) {
	in := "\n\nkde-runtime (4:4.10.2-1) experimental unstable; urgency=low\n\n  * New upstream release.\n\n -- Maximiliano Curia <maxy@debian.org>  Wed, 17 Apr 2013 11:41:15 +0200"
	v, err := ReadVersion(strings.NewReader(in))
	require.NoError(t, err)
	assert.EqualValues(t, version.Version{Epoch: 4, Upstream: "4.10.2", Revision: "1"}, v)

	// the changelog version sorts with ordinary versions
	assert.True(t, v.GreaterThan(version.MustParse("4.10.2-1")))
}

func TestReadFirst_Distributions(t *testing.T) {
	in := "kde-runtime (4:4.10.2-1) experimental unstable; URGENCY=high, binary-only=yes\n\n  * Rebuild.\n\n -- A Maintainer <a@example.org>  Mon, 01 Apr 2013 10:00:00 +0000\n"
	entry, err := ReadFirst(strings.NewReader(in))
	require.NoError(t, err)
	assert.EqualValues(t, []string{"experimental", "unstable"}, entry.Distributions)
	assert.EqualValues(t, "high", entry.Urgency)
}

// only the first entry needs to be well-formed
func TestReadFirst_IgnoresLaterEntries(t *testing.T) {
	in := changelogFile + "\nthis is not (a valid entry\n\tat all\n"
	entry, err := ReadFirst(strings.NewReader(in))
	require.NoError(t, err)
	assert.EqualValues(t, "1.2.3-4", entry.Version.String())
}

func TestReadFirst_Comparison(t *testing.T) {
	v, err := ReadVersion(strings.NewReader(changelogFile))
	require.NoError(t, err)

	vers := []version.Version{version.MustParse("1.2.3-5"), version.MustParse("1.3.3"), version.MustParse("1.0.0"), v}
	version.Sort(vers)
	assert.EqualValues(t, "1.0.0", vers[0].String())
	assert.EqualValues(t, v, vers[1])
	assert.EqualValues(t, "1.2.3-5", vers[2].String())
	assert.EqualValues(t, "1.3.3", vers[3].String())
}

func TestReadFirst_Malformed(t *testing.T) {
	var cases = []struct {
		name string
		in   string
		line int
	}{
		{"empty", "", 0},
		{"blank", "\n\n", 2},
		{"missing version", "package unstable; urgency=low\n", 1},
		{"missing semicolon", "package (1.0-1) unstable urgency=low\n", 1},
		{"bad version", "package (:1.0) unstable; urgency=low\n", 1},
		{"body first", "  * A new version\n", 1},
		{"no trailer", "\npackage (1.0-1) unstable; urgency=low\n\n  * A new version\n", 2},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := ReadFirst(strings.NewReader(tt.in))
			assert.Nil(t, entry)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.EqualValues(t, tt.line, perr.Line)
		})
	}
}
