package listing

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/go-logr/logr"
	"github.com/jlaffaye/ftp"
)

const anonymous = "anonymous"

// FTP lists directories of an FTP server using an
// anonymous login. Each listing uses its own connection.
type FTP struct {
	Addr    string
	Timeout time.Duration
}

func (f *FTP) List(ctx context.Context, dir string) ([]string, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("addr", f.Addr, "dir", dir)
	log.V(3).Info("connecting to ftp server")

	c, err := ftp.Dial(f.Addr, ftp.DialWithTimeout(f.Timeout), ftp.DialWithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", f.Addr, err)
	}
	defer func() {
		_ = c.Quit()
	}()
	if err := c.Login(anonymous, anonymous); err != nil {
		return nil, fmt.Errorf("logging in to %s: %w", f.Addr, err)
	}
	names, err := c.NameList(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	// some servers return full paths
	for i := range names {
		names[i] = path.Base(names[i])
	}
	log.V(4).Info("listed directory", "entries", len(names))
	return names, nil
}
