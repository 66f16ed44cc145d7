package main

import (
	"fmt"
	"os"

	"chardash/cmd/chardash/cli"
	"chardash/internal/chart"
	"chardash/internal/export"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// newExportCmd writes the films chart of one page to a spreadsheet.
func newExportCmd(opts *rootOptions) *cobra.Command {
	q := &queryOptions{}
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the films chart of a page to xlsx",
		Long:  `Load and filter characters like list, then write the films-per-character chart of the selected page to a spreadsheet.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runQuery(cmd.Context(), opts, opts.newClient(), q)
			if err != nil {
				return err
			}

			if dir == "" {
				dir = opts.cfg.Export.Directory
			}
			ds := chart.FilmsPerCharacter(res.Rows)
			path, err := export.NewExporter(dir).Export(ds)
			if err != nil {
				return err
			}

			size := "unknown size"
			if info, err := os.Stat(path); err == nil {
				size = humanize.Bytes(uint64(info.Size()))
			}
			cli.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Exported %d characters to %s (%s)", len(ds.Slices), path, size))
			printLoadNotes(cmd.OutOrStdout(), res.State, q.all)
			return nil
		},
	}
	q.addFlags(cmd)
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "output directory (default from config)")

	return cmd
}
