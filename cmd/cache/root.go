package cache

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Command groups the subcommands that manage
// downloaded repository indices.
var Command = &cobra.Command{
	Use:   "cache",
	Short: "Manage downloaded repository indices",
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cacheDir, _ := cmd.Flags().GetString(flagCacheDir)
		_, err := fmt.Fprintln(cmd.OutOrStdout(), Dir(cacheDir))
		return err
	},
}

func init() {
	pathCmd.Flags().String(flagCacheDir, "", "cache directory (defaults to user cache dir)")
	Command.AddCommand(cleanCmd, pathCmd)
}
