package cmd

import (
	"errors"

	"github.com/djcass44/pkgwatch/pkg/graph"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [root]",
	Short: "print the build dependency graph in DOT format",
	Args:  cobra.MaximumNArgs(1),
	RunE:  graphRun,
}

func init() {
	addRepositoryFlags(graphCmd)
	addNetworkFlags(graphCmd)
}

func graphRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logr.FromContextOrDiscard(ctx)

	cacheDir, _ := cmd.Flags().GetString(flagCacheDir)

	spec, err := specFromFlags(cmd, args)
	if err != nil {
		return err
	}
	opts, err := requestOptions(ctx, cmd, spec)
	if err != nil {
		return err
	}
	_, result, err := buildGraph(ctx, spec, opts, cacheDir)
	if err != nil {
		// a cyclic graph can still be drawn
		var cycle *graph.CyclicDependencyError
		if !errors.As(err, &cycle) || result == nil {
			return err
		}
		log.Info("graph contains cycles", "members", cycle.Members())
	}
	return graph.WriteDOT(cmd.OutOrStdout(), result.Graph, result.Outdated)
}
