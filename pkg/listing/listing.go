package listing

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/djcass44/pkgwatch/pkg/requestutil"
	"github.com/djcass44/pkgwatch/pkg/upstream"
)

var ErrUnsupportedScheme = errors.New("unsupported url scheme")

const defaultPortFTP = "21"

// ForURL returns a Lister that can browse the
// host of the given url.
func ForURL(ctx context.Context, u *url.URL, opts requestutil.Options) (upstream.Lister, error) {
	switch u.Scheme {
	case "file":
		return &Local{}, nil
	case "http", "https":
		return &HTTP{
			Client: requestutil.NewClient(ctx, opts),
			Base:   &url.URL{Scheme: u.Scheme, Host: u.Host},
		}, nil
	case "ftp":
		addr := u.Host
		if u.Port() == "" {
			addr = net.JoinHostPort(u.Hostname(), defaultPortFTP)
		}
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = requestutil.DefaultTimeout
		}
		return &FTP{
			Addr:    addr,
			Timeout: timeout,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
}
