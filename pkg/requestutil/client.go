package requestutil

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"io"
	"net/http"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/djcass44/pkgwatch/internal/logutil"
	"github.com/go-logr/logr"
	"github.com/hashicorp/go-retryablehttp"
)

const DefaultTimeout = 30 * time.Second

type Options struct {
	// Timeout bounds a single request. Zero uses DefaultTimeout.
	Timeout time.Duration
	// Retries is the number of times a failed request is
	// repeated. Requests are not retried by default.
	Retries int
	// RootCAs replaces the certificates used to verify
	// servers when set.
	RootCAs *x509.CertPool
}

// NewClient creates an HTTP client that logs through the
// logger carried by ctx.
func NewClient(ctx context.Context, opts Options) *retryablehttp.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := retryablehttp.NewClient()
	client.RetryMax = max(opts.Retries, 0)
	client.HTTPClient.Timeout = timeout
	client.Logger = logutil.NewLeveled(logr.FromContextOrDiscard(ctx).WithName("http"))

	// tweak the default transport so that we
	// can provide a custom certPool
	if opts.RootCAs != nil {
		if transport, ok := client.HTTPClient.Transport.(*http.Transport); ok {
			transport = transport.Clone()
			transport.TLSClientConfig = &tls.Config{
				RootCAs:    opts.RootCAs,
				MinVersion: tls.VersionTLS12,
			}
			client.HTTPClient.Transport = transport
		}
	}
	return client
}

// Get downloads the target into out. Non-2xx responses are
// returned as errors which can be inspected with requests.HasStatusErr.
func Get(ctx context.Context, client *retryablehttp.Client, target string, out io.Writer) error {
	return requests.
		URL(target).
		Client(client.StandardClient()).
		Handle(WithDecompression(out)).
		Fetch(ctx)
}

// Handle downloads the target and passes the raw response
// to the handler.
func Handle(ctx context.Context, client *retryablehttp.Client, target string, handler requests.ResponseHandler) error {
	return requests.
		URL(target).
		Client(client.StandardClient()).
		Handle(handler).
		Fetch(ctx)
}
