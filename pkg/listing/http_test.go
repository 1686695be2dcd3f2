package listing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/djcass44/pkgwatch/pkg/requestutil"
	"github.com/djcass44/pkgwatch/pkg/upstream"
	"github.com/djcass44/pkgwatch/pkg/watch"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexStable = `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 3.2 Final//EN">
<html>
<head><title>Index of /pub/kde/stable</title></head>
<body>
<h1>Index of /pub/kde/stable</h1>
<table>
<tr><th><a href="?C=N;O=D">Name</a></th><th><a href="?C=M;O=A">Last modified</a></th></tr>
<tr><td><a href="/pub/kde/">Parent Directory</a></td></tr>
<tr><td><a href="4.8.2/">4.8.2/</a></td></tr>
<tr><td><a href="4.9.5/">4.9.5/</a></td></tr>
<tr><td><a href="4.10.2/">4.10.2/</a></td></tr>
<tr><td><a href="latest/">latest/</a></td></tr>
<tr><td><a href="https://www.kde.org/">KDE</a></td></tr>
</table>
</body>
</html>
`

const indexSrc = `<html><body>
<a href="../">../</a>
<a href="kde-runtime-4.10.1.tar.xz">kde-runtime-4.10.1.tar.xz</a>
<a href="kde-runtime-4.10.2.tar.xz">kde-runtime-4.10.2.tar.xz</a>
<a href="/pub/kde/stable/4.10.2/src/kde-runtime-4.10.2.tar.xz">kde-runtime-4.10.2.tar.xz</a>
<a href="kde-runtime-4.10.2.tar.xz.sig">kde-runtime-4.10.2.tar.xz.sig</a>
</body></html>
`

func newServer(t *testing.T) *httptest.Server {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pub/kde/stable/":
			_, _ = w.Write([]byte(indexStable))
		case "/pub/kde/stable/4.10.2/src/":
			_, _ = w.Write([]byte(indexSrc))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_List(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))
	ts := newServer(t)
	base, err := url.Parse(ts.URL)
	require.NoError(t, err)

	h := &HTTP{Client: requestutil.NewClient(ctx, requestutil.Options{}), Base: base}

	var cases = []struct {
		dir string
		out []string
	}{
		{"/pub/kde/stable", []string{"4.8.2", "4.9.5", "4.10.2", "latest"}},
		{"/pub/kde/stable/4.10.2/src", []string{"kde-runtime-4.10.1.tar.xz", "kde-runtime-4.10.2.tar.xz", "kde-runtime-4.10.2.tar.xz.sig"}},
	}
	for _, tt := range cases {
		t.Run(tt.dir, func(t *testing.T) {
			out, err := h.List(ctx, tt.dir)
			require.NoError(t, err)
			assert.EqualValues(t, tt.out, out)
		})
	}

	t.Run("missing", func(t *testing.T) {
		_, err := h.List(ctx, "/pub/kde/unstable")
		assert.Error(t, err)
	})
}

func TestHTTP_Resolve(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))
	ts := newServer(t)

	rules, err := watch.Parse(strings.NewReader("version=3\n" + ts.URL + `/pub/kde/stable/([\d\.]*)/src/kde-runtime-([\d\.]*).tar.xz` + "\n"))
	require.NoError(t, err)

	lister, err := ForURL(ctx, rules[0].URL, requestutil.Options{})
	require.NoError(t, err)
	r := &upstream.Resolver{Lister: lister}

	out, err := r.Resolve(ctx, &rules[0])
	require.NoError(t, err)
	assert.EqualValues(t, "4.10.2", out.Version.String())
	assert.EqualValues(t, ts.URL+"/pub/kde/stable/4.10.2/src/kde-runtime-4.10.2.tar.xz", out.URL.String())
}
