package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dexview",
		Short:         "Browse a remote creature catalog and keep favorites",
		Long:          "dexview: search, filter and page through the remote catalog, open detail records and keep a persistent favorites list.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newFavoritesCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}
