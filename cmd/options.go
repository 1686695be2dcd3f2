package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/djcass44/pkgwatch/cmd/cache"
	v1 "github.com/djcass44/pkgwatch/pkg/api/v1"
	ca_certificates "github.com/djcass44/pkgwatch/pkg/ca-certificates"
	"github.com/djcass44/pkgwatch/pkg/debian"
	"github.com/djcass44/pkgwatch/pkg/downloader"
	"github.com/djcass44/pkgwatch/pkg/graph"
	"github.com/djcass44/pkgwatch/pkg/listing"
	"github.com/djcass44/pkgwatch/pkg/requestutil"
	"github.com/djcass44/pkgwatch/pkg/tree"
	"github.com/djcass44/pkgwatch/pkg/upstream"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/yaml"
)

const (
	flagConfig      = "config"
	flagPackages    = "packages"
	flagRepo        = "repo"
	flagArch        = "arch"
	flagCacheDir    = "cache-dir"
	flagCADir       = "ca-dir"
	flagTimeout     = "timeout"
	flagRetries     = "retries"
	flagDownloads   = "downloads"
	flagConcurrency = "concurrency"
)

func addRepositoryFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray(flagPackages, nil, "path or url of a binary package index (Packages file) to compare against")
	cmd.Flags().StringArray(flagRepo, nil, "repository to compare against, e.g. 'https://deb.debian.org/debian bookworm main'")
	cmd.Flags().String(flagArch, v1.DefaultArch, "architecture of the repository indices")
	cmd.Flags().String(flagCacheDir, "", "cache directory (defaults to user cache dir)")

	_ = cmd.MarkFlagDirname(flagCacheDir)
}

func addNetworkFlags(cmd *cobra.Command) {
	cmd.Flags().Duration(flagTimeout, requestutil.DefaultTimeout, "timeout of a single network request")
	cmd.Flags().Int(flagRetries, 0, "number of times a failed request is retried")
	cmd.Flags().String(flagCADir, "", "directory of additional ca certificates (*.crt) to trust")

	_ = cmd.MarkFlagDirname(flagCADir)
}

func addUpstreamFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagDownloads, "", "local directory to search for upstream releases instead of the watched locations")
	cmd.Flags().Int(flagConcurrency, 1, "number of packages to resolve at once")

	_ = cmd.MarkFlagDirname(flagDownloads)
}

// specFromFlags builds the scan settings of commands
// that are configured by flags alone.
func specFromFlags(cmd *cobra.Command, args []string) (v1.ScanSpec, error) {
	spec := v1.ScanSpec{Root: "."}
	if len(args) > 0 {
		spec.Root = args[0]
	}
	if cmd.Flags().Lookup(flagPackages) != nil {
		spec.Indices, _ = cmd.Flags().GetStringArray(flagPackages)
		repos, _ := cmd.Flags().GetStringArray(flagRepo)
		arch, _ := cmd.Flags().GetString(flagArch)
		for _, r := range repos {
			repo, err := parseRepository(r)
			if err != nil {
				return v1.ScanSpec{}, err
			}
			repo.Arch = arch
			spec.Repositories = append(spec.Repositories, repo)
		}
	}
	if cmd.Flags().Lookup(flagTimeout) != nil {
		timeout, _ := cmd.Flags().GetDuration(flagTimeout)
		spec.Upstream.Timeout.Duration = timeout
		spec.Upstream.Retries, _ = cmd.Flags().GetInt(flagRetries)
	}
	if cmd.Flags().Lookup(flagDownloads) != nil {
		spec.Upstream.Downloads, _ = cmd.Flags().GetString(flagDownloads)
		spec.Upstream.Concurrency, _ = cmd.Flags().GetInt(flagConcurrency)
	}
	spec.Expand()
	return spec, nil
}

// parseRepository reads a repository in the
// form 'base release component...'.
func parseRepository(s string) (v1.Repository, error) {
	bits := strings.Fields(s)
	if len(bits) < 2 {
		return v1.Repository{}, fmt.Errorf("malformed repository url, expecting: 'base release component...': %q", s)
	}
	return v1.Repository{
		URL:        bits[0],
		Release:    bits[1],
		Components: bits[2:],
	}, nil
}

func requestOptions(ctx context.Context, cmd *cobra.Command, spec v1.ScanSpec) (requestutil.Options, error) {
	opts := requestutil.Options{
		Timeout: spec.Upstream.Timeout.Duration,
		Retries: spec.Upstream.Retries,
	}
	if cmd.Flags().Lookup(flagCADir) == nil {
		return opts, nil
	}
	caDir, _ := cmd.Flags().GetString(flagCADir)
	if caDir == "" {
		return opts, nil
	}
	pool, err := ca_certificates.LoadCertificates(ctx, os.DirFS(caDir), ".")
	if err != nil {
		return requestutil.Options{}, fmt.Errorf("loading certificates: %w", err)
	}
	opts.RootCAs = pool
	return opts, nil
}

func readConfig(s string) (v1.Scan, error) {
	f, err := os.Open(s)
	if err != nil {
		return v1.Scan{}, err
	}
	defer f.Close()

	var config v1.Scan
	if err := yaml.NewYAMLOrJSONDecoder(f, 4).Decode(&config); err != nil {
		return v1.Scan{}, err
	}
	return config, nil
}

func loadTree(ctx context.Context, root string) (*tree.Tree, error) {
	log := logr.FromContextOrDiscard(ctx)
	t, err := tree.Scan(ctx, os.DirFS(root), ".")
	if err != nil {
		return nil, err
	}
	for _, e := range t.Errors {
		log.Error(e, "problem reading package")
	}
	return t, nil
}

// loadRecords reads every binary package index that is configured.
func loadRecords(ctx context.Context, spec v1.ScanSpec, opts requestutil.Options, cacheDir string) ([]debian.Record, error) {
	log := logr.FromContextOrDiscard(ctx)

	var (
		indices []*debian.Index
		dl      *downloader.Downloader
	)
	for _, src := range spec.Indices {
		path := src
		if isRemote(src) {
			var err error
			if dl == nil {
				dl, err = downloader.NewDownloader(filepath.Join(cache.Dir(cacheDir), "indices"))
				if err != nil {
					return nil, err
				}
			}
			path, err = dl.Download(ctx, src)
			if err != nil {
				return nil, fmt.Errorf("downloading index %s: %w", src, err)
			}
		}
		idx, err := debian.OpenIndex(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("reading index %s: %w", src, err)
		}
		indices = append(indices, idx)
	}

	if len(spec.Repositories) > 0 {
		client := requestutil.NewClient(ctx, opts)
		for _, repo := range spec.Repositories {
			for _, component := range repo.Components {
				idx, err := debian.NewIndex(ctx, client, repo.URL, repo.Release, component, repo.Arch)
				if err != nil {
					return nil, fmt.Errorf("reading repository %s %s %s: %w", repo.URL, repo.Release, component, err)
				}
				log.V(2).Info("added index", "count", idx.Count(), "source", repo.URL)
				indices = append(indices, idx)
			}
		}
	}
	return debian.Merge(indices...), nil
}

func isRemote(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	// single letters are windows drives
	return len(u.Scheme) > 1 && u.Scheme != "file"
}

// buildGraph scans the source tree and computes its dependency graph.
// The tree and result are returned alongside a cycle error.
func buildGraph(ctx context.Context, spec v1.ScanSpec, opts requestutil.Options, cacheDir string) (*tree.Tree, *graph.Result, error) {
	log := logr.FromContextOrDiscard(ctx)
	t, err := loadTree(ctx, spec.Root)
	if err != nil {
		return nil, nil, err
	}
	records, err := loadRecords(ctx, spec, opts, cacheDir)
	if err != nil {
		return nil, nil, err
	}
	result, err := graph.Build(ctx, t.Sources, records)
	if result != nil {
		for _, w := range result.Warnings {
			log.Info("warning: " + w.Error())
		}
	}
	return t, result, err
}

// resolveUpstream finds the newest upstream release of every
// package with a watch file. When a downloads directory is set,
// only that directory is searched.
func resolveUpstream(ctx context.Context, sources []*debian.SourcePackage, spec v1.ScanSpec, opts requestutil.Options) []upstream.Outcome {
	log := logr.FromContextOrDiscard(ctx)

	var jobs []upstream.Job
	for _, sp := range sources {
		if sp.WatchErr != nil {
			log.V(1).Info("skipping package with unreadable watch file", "name", sp.Name, "err", sp.WatchErr)
			continue
		}
		for _, rule := range sp.Watch {
			jobs = append(jobs, upstream.Job{Name: sp.Name, Rule: rule})
		}
	}
	log.V(1).Info("resolving upstream releases", "count", len(jobs))

	if spec.Upstream.Downloads != "" {
		lister := &listing.Local{}
		out := make([]upstream.Outcome, len(jobs))
		for i := range jobs {
			candidate, err := upstream.ScanDir(ctx, lister, &jobs[i].Rule, spec.Upstream.Downloads)
			out[i] = upstream.Outcome{Name: jobs[i].Name, Candidate: candidate, Err: err}
		}
		return out
	}
	return upstream.ResolveAll(ctx, jobs, spec.Upstream.Concurrency, func(u *url.URL) (upstream.Lister, error) {
		return listing.ForURL(ctx, u, opts)
	})
}
