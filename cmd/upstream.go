package cmd

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

var upstreamCmd = &cobra.Command{
	Use:   "upstream [root]",
	Short: "find the newest upstream release of each source package",
	Args:  cobra.MaximumNArgs(1),
	RunE:  upstreamRun,
}

func init() {
	addUpstreamFlags(upstreamCmd)
	addNetworkFlags(upstreamCmd)
}

func upstreamRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logr.FromContextOrDiscard(ctx)

	spec, err := specFromFlags(cmd, args)
	if err != nil {
		return err
	}
	opts, err := requestOptions(ctx, cmd, spec)
	if err != nil {
		return err
	}
	t, err := loadTree(ctx, spec.Root)
	if err != nil {
		return err
	}

	var failed int
	for _, o := range resolveUpstream(ctx, t.Sources, spec, opts) {
		if o.Err != nil {
			failed++
			log.Error(o.Err, "unable to resolve upstream release", "name", o.Name)
			continue
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", o.Name, o.Candidate.Version, o.Candidate.URL)
	}
	if failed > 0 {
		log.Info("some upstream releases could not be resolved", "count", failed)
	}
	return nil
}
