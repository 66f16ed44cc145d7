package main

import (
	"fmt"
	"io"
	"strconv"

	"chardash/cmd/chardash/cli"
	"chardash/internal/store"
	"chardash/internal/tui/components"
	"chardash/internal/tui/views"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var listHeaders = []string{"ID", "Name", "TV Shows", "Video Games", "Films", "Allies", "Enemies"}

// newListCmd prints one page of characters as a table.
func newListCmd(opts *rootOptions) *cobra.Command {
	q := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print a page of characters",
		Long: `Load characters from the API and print one filtered page.
Only the first page is fetched unless --all is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runQuery(cmd.Context(), opts, opts.newClient(), q)
			if err != nil {
				return err
			}
			printList(cmd.OutOrStdout(), res, q.all)
			return nil
		},
	}
	q.addFlags(cmd)

	return cmd
}

func printList(w io.Writer, res queryResult, all bool) {
	cli.PrintHeader(w, fmt.Sprintf("%s characters", humanize.Comma(int64(res.Matched))))

	if len(res.Rows) == 0 {
		cli.PrintInfo(w, components.EmptyText)
	} else {
		rows := make([][]string, 0, len(res.Rows))
		for _, c := range res.Rows {
			rows = append(rows, []string{
				strconv.Itoa(c.ID),
				c.DisplayName(),
				humanize.Comma(int64(len(c.TVShows))),
				humanize.Comma(int64(len(c.VideoGames))),
				humanize.Comma(int64(len(c.Films))),
				components.Preview(c.Allies),
				components.Preview(c.Enemies),
			})
		}
		cli.PrintTable(w, listHeaders, rows)
	}

	fmt.Fprintln(w, views.PageIndicator(res.State.CurrentPage, res.Pages, res.State.PageSize))
	printLoadNotes(w, res.State, all)
}

// printLoadNotes explains when the output does not cover every character.
func printLoadNotes(w io.Writer, st store.State, all bool) {
	switch {
	case st.Phase == store.PartiallyLoaded:
		cli.PrintWarning(w, "Some pages failed to load; showing the first page only.")
	case !all && st.FirstPageOnly():
		cli.PrintInfo(w, fmt.Sprintf("Loaded the first %s characters. Use --all for the rest.", humanize.Comma(int64(len(st.Characters)))))
	}
}
