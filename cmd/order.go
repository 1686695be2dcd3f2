package cmd

import (
	"errors"
	"fmt"

	"github.com/djcass44/pkgwatch/pkg/graph"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order [root]",
	Short: "print the outdated source packages in the order they must be built",
	Args:  cobra.MaximumNArgs(1),
	RunE:  order,
}

const flagAll = "all"

func init() {
	orderCmd.Flags().Bool(flagAll, false, "print every source package rather than only the outdated ones")
	addRepositoryFlags(orderCmd)
	addNetworkFlags(orderCmd)
}

func order(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logr.FromContextOrDiscard(ctx)

	all, _ := cmd.Flags().GetBool(flagAll)
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
		var cycle *graph.CyclicDependencyError
		if errors.As(err, &cycle) {
			log.Error(err, "unable to order packages", "members", cycle.Members())
		}
		return err
	}

	names := result.OutdatedInOrder()
	if all {
		names = result.Order
	}
	for _, name := range names {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
