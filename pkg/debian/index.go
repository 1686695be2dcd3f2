package debian

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/carlmjohnson/requests"
	"github.com/djcass44/pkgwatch/pkg/requestutil"
	"github.com/djcass44/pkgwatch/pkg/version"
	"github.com/go-logr/logr"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	debcontrol "pault.ag/go/debian/control"
)

const (
	PackageFileGzip = "Packages.gz"
	PackageFileXZ   = "Packages.xz"
)

var ErrNotFound = errors.New("package file not found")

// NewIndex downloads the binary package index of a repository.
func NewIndex(ctx context.Context, client *retryablehttp.Client, repository, release, component, arch string) (*Index, error) {
	// try to download the gzip repository
	index, err := downloadIndex(ctx, client, repository, release, component, arch, PackageFileGzip)
	if err == nil {
		return index, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// try to download the xz repository
	return downloadIndex(ctx, client, repository, release, component, arch, PackageFileXZ)
}

func downloadIndex(ctx context.Context, client *retryablehttp.Client, repository, release, component, arch, filename string) (*Index, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("repo", repository, "release", release, "component", component, "arch", arch, "filename", filename)
	log.V(1).Info("downloading index")

	target := fmt.Sprintf("%s/dists/%s/%s/binary-%s/%s", strings.TrimSuffix(repository, "/"), release, component, arch, filename)
	var index *Index
	err := requestutil.Handle(ctx, client, target, func(resp *http.Response) error {
		log.V(1).Info("successfully downloaded index", "code", resp.StatusCode)
		r, err := Decompress(resp.Body, filename)
		if err != nil {
			return err
		}
		defer r.Close()
		index, err = ReadIndex(ctx, repository, r)
		return err
	})
	if err != nil {
		// return a special error on 404, so we can check for
		// other file types
		if requests.HasStatusErr(err, http.StatusNotFound) {
			log.V(1).Info("failed to locate package index")
			return nil, ErrNotFound
		}
		log.V(1).Info("failed to download file", "url", target)
		return nil, fmt.Errorf("downloading %s: %w", target, err)
	}
	return index, nil
}

// OpenIndex reads a binary package index from disk, decompressing
// it based on the file extension.
func OpenIndex(ctx context.Context, path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := Decompress(f, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ReadIndex(ctx, path, r)
}

// Decompress wraps r in a decompressor chosen by
// the extension of name.
func Decompress(r io.Reader, name string) (io.ReadCloser, error) {
	switch filepath.Ext(name) {
	case ".gz":
		return gzip.NewReader(r)
	case ".xz":
		reader, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(reader), nil
	case ".zst":
		reader, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return reader.IOReadCloser(), nil
	default:
		return io.NopCloser(r), nil
	}
}

// ReadIndex parses an uncompressed binary package index.
func ReadIndex(ctx context.Context, source string, r io.Reader) (*Index, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("source", source)
	dec, err := debcontrol.NewDecoder(r, nil)
	if err != nil {
		return nil, fmt.Errorf("creating decoder: %w", err)
	}
	var entries []indexEntry
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding index: %w", err)
	}
	out := make([]Package, 0, len(entries))
	for _, e := range entries {
		if e.Package == "" {
			log.V(4).Info("skipping paragraph without a package name")
			continue
		}
		v, err := version.Parse(e.Version)
		if err != nil {
			return nil, fmt.Errorf("reading version of %s: %w", e.Package, err)
		}
		// the source field may carry the source version
		// if it differs from the binary version
		src, _, _ := strings.Cut(e.Source, " ")
		if src == "" {
			src = e.Package
		}
		out = append(out, Package{
			Package:      e.Package,
			Source:       src,
			Version:      v,
			Architecture: e.Architecture,
			Filename:     e.Filename,
			Sha256:       e.Sha256,
		})
	}
	log.V(1).Info("successfully decoded index", "count", len(out))
	return &Index{
		packages: out,
		source:   source,
	}, nil
}

func (idx *Index) Count() int {
	return len(idx.packages)
}

func (idx *Index) Source() string {
	return idx.source
}

func (idx *Index) Packages() []Package {
	return idx.packages
}

// Records returns the observed version of every
// binary package in the index.
func (idx *Index) Records() []Record {
	out := make([]Record, len(idx.packages))
	for i, p := range idx.packages {
		out[i] = Record{
			Binary:  p.Package,
			Version: p.Version,
		}
	}
	return out
}
