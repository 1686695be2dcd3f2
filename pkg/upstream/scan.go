package upstream

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/djcass44/pkgwatch/pkg/version"
	"github.com/djcass44/pkgwatch/pkg/watch"
	"github.com/go-logr/logr"
)

// ScanLocal picks the newest of the local files whose name
// matches the filename pattern of the rule.
func ScanLocal(rule *watch.Rule, names []string, dir string) (*Candidate, error) {
	re, err := rule.FilenameRegexp()
	if err != nil {
		return nil, err
	}
	name, v, err := newest(re, names, rule.MangleVersion)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &NoCandidateError{Path: dir, Pattern: rule.Pattern()}
	}
	// file URLs need an absolute path, otherwise the first
	// element of the path becomes the host
	if !filepath.IsAbs(dir) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", dir, err)
		}
		dir = abs
	}
	return &Candidate{
		Version: v,
		URL: &url.URL{
			Scheme: "file",
			Path:   path.Join(filepath.ToSlash(dir), name),
		},
	}, nil
}

// ScanDir lists dir and picks the newest file
// matching the rule.
func ScanDir(ctx context.Context, lister Lister, rule *watch.Rule, dir string) (*Candidate, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("dir", dir, "pattern", rule.Pattern())
	names, err := lister.List(ctx, dir)
	if err != nil {
		return nil, err
	}
	log.V(3).Info("scanning directory", "entries", len(names))
	return ScanLocal(rule, names, dir)
}

// newest returns the name that matches re and has the highest
// version. Versions are built by joining the captured groups with
// ".". Names whose version cannot be parsed are skipped and ties
// keep the first name.
func newest(re *regexp.Regexp, names []string, mangle func(string) (string, error)) (string, version.Version, error) {
	var (
		best    string
		bestVer version.Version
	)
	for _, name := range names {
		matches := re.FindStringSubmatch(name)
		if matches == nil {
			continue
		}
		raw := joinGroups(matches[1:])
		if mangle != nil {
			var err error
			raw, err = mangle(raw)
			if err != nil {
				return "", version.Version{}, err
			}
		}
		v, err := version.Parse(raw)
		if err != nil {
			continue
		}
		if best == "" || v.GreaterThan(bestVer) {
			best, bestVer = name, v
		}
	}
	return best, bestVer, nil
}

func joinGroups(groups []string) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		if g != "" {
			parts = append(parts, g)
		}
	}
	return strings.Join(parts, ".")
}
