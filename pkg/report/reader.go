package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
)

var ErrMissing = errors.New("missing report")

func Read(ctx context.Context, path string) (*Report, error) {
	log := logr.FromContextOrDiscard(ctx)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		log.Error(err, "failed to open report")
		return nil, err
	}
	defer f.Close()
	// read the report
	var r Report
	if err := json.NewDecoder(f).Decode(&r); err != nil {
		log.Error(err, "failed to read report")
		return nil, err
	}
	for k, v := range r.Packages {
		v.Name = k
		r.Packages[k] = v
	}
	return &r, nil
}

func (r *Report) Write(ctx context.Context, path string) error {
	log := logr.FromContextOrDiscard(ctx)
	log.Info("exporting report", "path", path)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "\t")
	return enc.Encode(r)
}

// Name returns the report path that belongs
// to a configuration file.
func Name(s string) string {
	return strings.TrimSuffix(s, filepath.Ext(s)) + "-report.json"
}
