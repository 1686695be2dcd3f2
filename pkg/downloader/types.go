package downloader

// Downloader fetches remote files into a cache directory.
type Downloader struct {
	cacheDir string
}
