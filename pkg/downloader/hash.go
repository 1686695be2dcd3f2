package downloader

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
)

const digestLength = 12

// CacheName returns the name that a download of uri is stored
// under. Indices of different repositories share a base name,
// so a short digest of the host and path is prepended. The
// query is ignored.
func CacheName(uri *url.URL) string {
	h := sha256.Sum256([]byte(uri.Host + uri.Path))
	return hex.EncodeToString(h[:])[:digestLength] + "-" + path.Base(uri.Path)
}
