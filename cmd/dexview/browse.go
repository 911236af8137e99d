package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joestump/dexview/internal/detail"
	"github.com/joestump/dexview/internal/listing"
	"github.com/joestump/dexview/internal/store"
)

const browseHelp = `commands:
  n            next page
  p            previous page
  s [text]     search by name (empty clears)
  t [type]     filter by type (empty clears)
  o <id>       open detail
  f <id>       toggle favorite
  h            help
  q            quit
`

func newBrowseCmd() *cobra.Command {
	var (
		search      string
		category    string
		page        int
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through the catalog",
		Long:  "Fetch and assemble the catalog, then print one page. With -i, read navigation commands from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			cat := a.newCatalog()
			if err := cat.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			s := &browseSession{
				out:       cmd.OutOrStdout(),
				entries:   cat.Snapshot().Entries,
				favorites: a.favorites,
				loader:    detail.NewLoader(a.client, a.log.Named("detail")),
				view:      listing.NewView(a.cfg.Listing.PageSize),
			}
			s.view.SetSearch(search)
			s.view.SetCategory(category)
			s.view.GoTo(page)
			s.render()

			if !interactive {
				return nil
			}
			return s.run(cmd.Context(), cmd.InOrStdin())
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "name substring")
	cmd.Flags().StringVarP(&category, "type", "t", "", "category")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "1-based page")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "read commands from stdin")
	return cmd
}

// browseSession is one interactive listing over an assembled catalog.
type browseSession struct {
	out       io.Writer
	entries   []listing.Entry
	favorites *store.FavoritesStore
	loader    *detail.Loader
	view      *listing.View
}

func (s *browseSession) render() {
	fmt.Fprint(s.out, renderPage(s.view.Current(s.entries), s.favorites.Contains))
}

func (s *browseSession) run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	fmt.Fprint(s.out, "> ")
	for sc.Scan() {
		cmd, arg, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
		case "q", "quit":
			return nil
		case "h", "help":
			fmt.Fprint(s.out, browseHelp)
		case "n":
			if s.view.NextPage(s.entries) {
				s.render()
			}
		case "p":
			if s.view.PrevPage(s.entries) {
				s.render()
			}
		case "s":
			s.view.SetSearch(arg)
			s.render()
		case "t":
			s.view.SetCategory(arg)
			s.render()
		case "o":
			s.open(ctx, arg)
		case "f":
			if err := s.toggle(ctx, arg); err != nil {
				return err
			}
		default:
			fmt.Fprintf(s.out, "unknown command %q\n%s", cmd, browseHelp)
		}
		fmt.Fprint(s.out, "> ")
	}
	return sc.Err()
}

func (s *browseSession) open(ctx context.Context, arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(s.out, "invalid id %q\n", arg)
		return
	}
	fmt.Fprintln(s.out, mutedStyle.Render("loading..."))
	d, err := s.loader.Open(ctx, id)
	if err != nil {
		fmt.Fprint(s.out, renderNotFound())
		return
	}
	fmt.Fprint(s.out, renderDetail(d, s.favorites.Contains(id)))
	s.loader.Close()
}

func (s *browseSession) toggle(ctx context.Context, arg string) error {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(s.out, "invalid id %q\n", arg)
		return nil
	}
	set, err := s.favorites.Toggle(ctx, id)
	if err != nil {
		return fmt.Errorf("toggle favorite %d: %w", id, err)
	}
	fmt.Fprintf(s.out, "%s #%d\n", star(set.Contains(id)), id)
	return nil
}
