package downloader

import (
	"context"
	"net/url"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-getter"
)

func NewDownloader(cacheDir string) (*Downloader, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}
	return &Downloader{cacheDir: cacheDir}, nil
}

// Download fetches src into the cache and returns the path to
// the file. Compressed files are kept compressed.
func (d *Downloader) Download(ctx context.Context, src string) (string, error) {
	log := logr.FromContextOrDiscard(ctx)
	log.Info("downloading file", "src", src)

	uri, err := url.Parse(src)
	if err != nil {
		log.Error(err, "failed to parse url")
		return "", err
	}
	// download the file to a predictable location so that
	// we can avoid repeated downloads
	dst := filepath.Join(d.cacheDir, CacheName(uri))

	// disable archive handling
	q := uri.Query()
	q.Set("archive", "false")
	uri.RawQuery = q.Encode()
	log.V(1).Info("preparing to download file", "dst", dst)

	client := &getter.Client{
		Ctx:             ctx,
		Src:             uri.String(),
		Dst:             dst,
		Mode:            getter.ClientModeFile,
		DisableSymlinks: true,
	}
	if err := client.Get(); err != nil {
		log.Error(err, "failed to download file")
		return "", err
	}
	return dst, nil
}
