package debian

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/djcass44/pkgwatch/pkg/version"
	debcontrol "pault.ag/go/debian/control"
)

var ErrNoDsc = errors.New("source descriptor is missing the Source or Version field")

// ReadDsc reads a source descriptor (.dsc). Signed
// descriptors are accepted but the signature is not verified.
func ReadDsc(r io.Reader, path string) (*Dsc, error) {
	d, err := debcontrol.ParseDsc(bufio.NewReader(r), path)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading %s: %w", path, ErrNoDsc)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if d.Source == "" || d.Version.Version == "" {
		return nil, fmt.Errorf("reading %s: %w", path, ErrNoDsc)
	}
	files := make([]FileRef, len(d.Files))
	for i, f := range d.Files {
		files[i] = fileRef(f.FileHash)
	}
	sha256 := make([]FileRef, len(d.ChecksumsSha256))
	for i, f := range d.ChecksumsSha256 {
		sha256[i] = fileRef(f.FileHash)
	}
	var binaries []string
	for _, b := range d.Binaries {
		if b = strings.TrimSpace(b); b != "" {
			binaries = append(binaries, b)
		}
	}
	return &Dsc{
		Source: d.Source,
		Version: version.Version{
			Epoch:    d.Version.Epoch,
			Upstream: d.Version.Version,
			Revision: d.Version.Revision,
		},
		Binaries: binaries,
		Files:    files,
		Sha256:   sha256,
		Path:     path,
	}, nil
}

func fileRef(f debcontrol.FileHash) FileRef {
	return FileRef{
		Checksum: f.Hash,
		Size:     f.Size,
		Name:     f.Filename,
	}
}
