package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joestump/dexview/internal/detail"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Fetch and print one detail record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q: must be a positive integer", args[0])
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			loader := detail.NewLoader(a.client, a.log.Named("detail"))
			d, err := loader.Open(cmd.Context(), id)
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), renderNotFound())
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderDetail(d, a.favorites.Contains(id)))
			return nil
		},
	}
}
