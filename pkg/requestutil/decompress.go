package requestutil

import (
	"fmt"
	"io"
	"net/http"

	"github.com/carlmjohnson/requests"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-logr/logr"
	"github.com/mholt/archives"
)

var (
	ContentTypesGzip = []string{"application/gzip", "application/x-gzip"}
	ContentTypesXz   = []string{"application/x-xz"}
	ContentTypesZstd = []string{"application/zstd"}
)

// WithDecompression copies the response body into out,
// decompressing it first if the server says that it is
// compressed.
func WithDecompression(out io.Writer) requests.ResponseHandler {
	return func(response *http.Response) error {
		log := logr.FromContextOrDiscard(response.Request.Context())
		var stream io.Reader = response.Body

		contentType := response.Header.Get("Content-Type")
		if dec := decompressor(contentType); dec != nil {
			log.V(8).Info("decompressing response", "contentType", contentType)
			rc, err := dec.OpenReader(response.Body)
			if err != nil {
				return fmt.Errorf("decompressing: %w", err)
			}
			defer rc.Close()
			stream = rc
		}

		_, err := io.Copy(out, stream)
		if err != nil {
			return fmt.Errorf("writing uncompressed output: %w", err)
		}
		return nil
	}
}

// decompressor returns the decompressor for a content
// type, or nil if it is not a known compression format.
func decompressor(s string) archives.Decompressor {
	switch {
	case mimetype.EqualsAny(s, ContentTypesGzip...):
		return archives.Gz{}
	case mimetype.EqualsAny(s, ContentTypesXz...):
		return archives.Xz{}
	case mimetype.EqualsAny(s, ContentTypesZstd...):
		return archives.Zstd{}
	default:
		return nil
	}
}
