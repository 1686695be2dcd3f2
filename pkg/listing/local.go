package listing

import (
	"context"
	"os"

	"github.com/go-logr/logr"
)

// Local lists directories of the local filesystem.
type Local struct{}

func (*Local) List(ctx context.Context, dir string) ([]string, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("dir", dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	log.V(4).Info("listed directory", "entries", len(out))
	return out, nil
}
