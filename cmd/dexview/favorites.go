package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joestump/dexview/internal/detail"
)

// favoriteRecord is one row of `favorites list --details`.
type favoriteRecord struct {
	ID         int      `json:"id" yaml:"id"`
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List or toggle favorites",
	}
	cmd.AddCommand(newFavoritesListCmd())
	cmd.AddCommand(newFavoritesToggleCmd())
	return cmd
}

func newFavoritesListCmd() *cobra.Command {
	var (
		output  string
		details bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the favorite IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unsupported output %q: must be text, json or yaml", output)
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			ids := a.favorites.Snapshot().IDs()
			records := make([]favoriteRecord, 0, len(ids))
			if details {
				ds, err := detail.FetchMany(cmd.Context(), a.client, ids)
				if err != nil {
					return fmt.Errorf("fetch favorites: %w", err)
				}
				for _, d := range ds {
					records = append(records, favoriteRecord{ID: d.ID, Name: d.Name, Categories: d.Categories})
				}
			} else {
				for _, id := range ids {
					records = append(records, favoriteRecord{ID: id})
				}
			}
			return writeFavorites(cmd, output, records)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&details, "details", false, "fetch the name and types of every favorite")
	return cmd
}

func writeFavorites(cmd *cobra.Command, output string, records []favoriteRecord) error {
	w := cmd.OutOrStdout()
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No favorites yet."))
		return nil
	}
	for _, r := range records {
		if r.Name == "" {
			fmt.Fprintf(w, "%s #%d\n", star(true), r.ID)
			continue
		}
		fmt.Fprintf(w, "%s #%-4d %s %s\n", star(true), r.ID, r.Name, badges(r.Categories))
	}
	return nil
}

func newFavoritesToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add or remove one favorite",
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

			set, err := a.favorites.Toggle(cmd.Context(), id)
			if err != nil {
				return err
			}
			state := "removed from"
			if set.Contains(id) {
				state = "added to"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s favorites (%d total)\n", star(set.Contains(id)), id, state, set.Len())
			return nil
		},
	}
}

