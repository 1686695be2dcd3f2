package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/djcass44/pkgwatch/pkg/debian"
	"github.com/djcass44/pkgwatch/pkg/graph"
	"github.com/djcass44/pkgwatch/pkg/report"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "generate a report of outdated source packages and their upstream releases",
	RunE:  scan,
}

const (
	flagOutput       = "output"
	flagSkipUpstream = "skip-upstream"
)

func init() {
	scanCmd.Flags().StringP(flagConfig, "c", "", "path to a scan configuration file")
	scanCmd.Flags().StringP(flagOutput, "o", "", "path to write the report to (defaults to <config>-report.json)")
	scanCmd.Flags().String(flagCacheDir, "", "cache directory (defaults to user cache dir)")
	scanCmd.Flags().Bool(flagSkipUpstream, false, "skip resolution of upstream releases")
	addNetworkFlags(scanCmd)

	_ = scanCmd.MarkFlagRequired(flagConfig)
	_ = scanCmd.MarkFlagFilename(flagConfig, ".yaml", ".yml", ".json")
	_ = scanCmd.MarkFlagDirname(flagCacheDir)
}

func scan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logr.FromContextOrDiscard(ctx)

	configPath, _ := cmd.Flags().GetString(flagConfig)
	outputPath, _ := cmd.Flags().GetString(flagOutput)
	cacheDir, _ := cmd.Flags().GetString(flagCacheDir)
	skipUpstream, _ := cmd.Flags().GetBool(flagSkipUpstream)

	// read the config file
	cfg, err := readConfig(configPath)
	if err != nil {
		return err
	}
	if outputPath == "" {
		outputPath = report.Name(configPath)
	}
	spec := cfg.Spec
	spec.Expand()

	// flags override the config when they are set
	if cmd.Flags().Changed(flagTimeout) {
		spec.Upstream.Timeout.Duration, _ = cmd.Flags().GetDuration(flagTimeout)
	}
	if cmd.Flags().Changed(flagRetries) {
		spec.Upstream.Retries, _ = cmd.Flags().GetInt(flagRetries)
	}

	// relative locations are relative to the
	// directory containing the configuration file
	configPath, err = filepath.Abs(configPath)
	if err != nil {
		return err
	}
	wd := filepath.Dir(configPath)
	spec.Root = relativeTo(wd, spec.Root)
	if spec.Upstream.Downloads != "" {
		spec.Upstream.Downloads = relativeTo(wd, spec.Upstream.Downloads)
	}
	for i := range spec.Indices {
		if !isRemote(spec.Indices[i]) {
			spec.Indices[i] = relativeTo(wd, spec.Indices[i])
		}
	}
	log.Info("scanning source packages", "root", spec.Root)

	opts, err := requestOptions(ctx, cmd, spec)
	if err != nil {
		return err
	}

	r := report.New(cfg.Name)

	t, result, err := buildGraph(ctx, spec, opts, cacheDir)
	if err != nil {
		var cycle *graph.CyclicDependencyError
		if !errors.As(err, &cycle) || result == nil {
			return err
		}
		r.AddError(err)
	}
	for _, e := range t.Errors {
		r.AddError(e)
	}
	for _, w := range result.Warnings {
		r.AddError(w)
	}

	fsys := os.DirFS(spec.Root)
	for _, sp := range t.Sources {
		r.AddSource(sp, result.Outdated[sp.Name])
		orig, err := debian.FindOrig(fsys, sp)
		if err == nil {
			r.SetOrig(sp.Name, orig)
		}
	}
	r.Order = result.OutdatedInOrder()

	if !skipUpstream {
		for _, o := range resolveUpstream(ctx, t.Sources, spec, opts) {
			if o.Err != nil {
				r.SetUpstream(o.Name, &report.Upstream{Error: o.Err.Error()})
				continue
			}
			u := &report.Upstream{
				Version:  o.Candidate.Version.String(),
				Resolved: o.Candidate.URL.String(),
			}
			if o.Candidate.URL.Scheme == "file" {
				u.Integrity, err = report.Sha256(filepath.FromSlash(o.Candidate.URL.Path))
				if err != nil {
					log.Error(err, "unable to calculate upstream integrity", "name", o.Name)
				}
			}
			r.SetUpstream(o.Name, u)
		}
	}

	log.Info("found outdated packages", "count", len(r.Order))
	return r.Write(ctx, outputPath)
}

func relativeTo(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
