package ca_certificates

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-logr/logr"
)

const (
	CertsDir      = "/usr/share/ca-certificates"
	LocalCertsDir = "/usr/local/share/ca-certificates"
)

var ErrNoCertificates = errors.New("no certificates found")

// LoadCertificates adds every ".crt" file below dir to the system
// certificate pool, in the same way that "update-ca-certificates"
// builds its bundle.
func LoadCertificates(ctx context.Context, fsys fs.FS, dir string) (*x509.CertPool, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("dir", dir)

	pool, err := x509.SystemCertPool()
	if err != nil {
		log.V(1).Info("unable to load system certificates", "err", err)
		pool = x509.NewCertPool()
	}
	var count int
	err = fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".crt") {
			return nil
		}
		log.V(3).Info("found certificate", "name", d.Name())

		// read the file
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		if !pool.AppendCertsFromPEM(data) {
			return fmt.Errorf("reading certificate %s: no PEM data", path)
		}
		count++
		return nil
	})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCertificates, dir)
	}
	log.V(1).Info("loaded certificates", "count", count)
	return pool, nil
}
