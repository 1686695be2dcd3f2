package upstream

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/djcass44/pkgwatch/pkg/watch"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kdeWatch = `version=3
ftp://ftp.kde.org/pub/kde/stable/([\d\.]*)/src/kde-runtime-([\d\.]*).tar.xz
`

func parseRule(t *testing.T, s string) *watch.Rule {
	rules, err := watch.Parse(strings.NewReader(s))
	require.NoError(t, err)
	require.NotEmpty(t, rules)
	return &rules[0]
}

func TestScanLocal(t *testing.T) {
	var cases = []struct {
		name    string
		watch   string
		files   []string
		dir     string
		version string
		url     string
	}{
		{
			"kde",
			kdeWatch,
			[]string{"afile.tar.xz", "anonter.tar.xz", "kde-runtime-4.10.2.tar.xz", "kde-runtime-4.8.2.tar.xz"},
			"/tmp",
			"4.10.2",
			"file:///tmp/kde-runtime-4.10.2.tar.xz",
		},
		{
			"highest version",
			"version=3\nhttps://example.org/dl/pkg-(\\d+\\.\\d+)\\.tar\\.gz\n",
			[]string{"pkg-1.0.tar.gz", "pkg-1.2.tar.gz"},
			"/srv/downloads",
			"1.2",
			"file:///srv/downloads/pkg-1.2.tar.gz",
		},
		{
			"groups are joined",
			"version=3\nhttps://example.org/dl/pkg-(\\d+)_(\\d+)_(\\d+)\\.tar\\.gz\n",
			[]string{"pkg-1_9_0.tar.gz", "pkg-1_10_0.tar.gz", "pkg-1_10_0.tar.gz.asc"},
			"/tmp",
			"1.10.0",
			"file:///tmp/pkg-1_10_0.tar.gz",
		},
		{
			"ties keep the first",
			"version=3\nhttps://example.org/dl/pkg-(\\d+\\.\\d+)\\.tar\\.(?:gz|xz)\n",
			[]string{"pkg-1.01.tar.xz", "pkg-1.1.tar.gz"},
			"/tmp",
			"1.01",
			"file:///tmp/pkg-1.01.tar.xz",
		},
		{
			"mangled",
			"version=3\nopts=uversionmangle=s/rc/~rc/ https://example.org/dl/pkg-(\\d+\\.\\d+(?:rc\\d+)?)\\.tar\\.gz\n",
			[]string{"pkg-2.0rc1.tar.gz", "pkg-2.0.tar.gz", "pkg-1.9.tar.gz"},
			"/tmp",
			"2.0",
			"file:///tmp/pkg-2.0.tar.gz",
		},
		{
			"unparsable versions are skipped",
			"version=3\nhttps://example.org/dl/pkg-(.*)\\.tar\\.gz\n",
			[]string{"pkg-.tar.gz", "pkg-0.9.tar.gz"},
			"/tmp",
			"0.9",
			"file:///tmp/pkg-0.9.tar.gz",
		},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ScanLocal(parseRule(t, tt.watch), tt.files, tt.dir)
			require.NoError(t, err)
			assert.EqualValues(t, tt.version, out.Version.String())
			assert.EqualValues(t, tt.url, out.URL.String())
		})
	}
}

func TestScanLocal_RelativeDir(t *testing.T) {
	rule := parseRule(t, kdeWatch)

	out, err := ScanLocal(rule, []string{"kde-runtime-4.10.2.tar.xz"}, "downloads")
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.EqualValues(t, "file", out.URL.Scheme)
	assert.Empty(t, out.URL.Host)
	assert.EqualValues(t, filepath.ToSlash(filepath.Join(wd, "downloads", "kde-runtime-4.10.2.tar.xz")), out.URL.Path)
}

func TestScanLocal_NoCandidate(t *testing.T) {
	rule := parseRule(t, kdeWatch)

	_, err := ScanLocal(rule, []string{"afile.tar.xz", "kde-runtime-4.10.2.tar.gz"}, "/tmp")
	var nerr *NoCandidateError
	require.ErrorAs(t, err, &nerr)
	assert.EqualValues(t, "/tmp", nerr.Path)
	assert.EqualValues(t, `kde-runtime-([\d\.]*).tar.xz`, nerr.Pattern)
}

func TestScanDir(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))

	lister := fakeLister{
		"/tmp": {"kde-runtime-4.8.2.tar.xz", "kde-runtime-4.10.2.tar.xz"},
	}
	out, err := ScanDir(ctx, lister, parseRule(t, kdeWatch), "/tmp")
	require.NoError(t, err)
	assert.EqualValues(t, "4.10.2", out.Version.String())
}
