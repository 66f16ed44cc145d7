package main

import (
	"fmt"
	"strconv"

	"chardash/internal/errors"
	"chardash/internal/tui/components"

	"github.com/spf13/cobra"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id < 0 {
				return errors.NewInvalidInputError("character id must be a non-negative integer", err).WithContext("id", args[0])
			}

			c, err := opts.newClient().FetchCharacter(cmd.Context(), id)
			if err != nil {
				return errors.Wrapf(err, "show character %d", id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), components.RenderDetail(c, width))
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 80, "wrap width")

	return cmd
}
