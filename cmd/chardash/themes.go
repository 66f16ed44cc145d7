package main

import (
	"fmt"
	"slices"

	"chardash/cmd/chardash/cli"
	"chardash/internal/config"
	"chardash/internal/errors"

	"github.com/spf13/cobra"
)

// newThemesCmd lists the color themes, or saves one with --set.
func newThemesCmd(opts *rootOptions) *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if set != "" {
				if !slices.Contains(config.ListThemes(), set) {
					return errors.NewInvalidInputError("unknown theme "+set, nil).WithContext("theme", set)
				}
				path, err := opts.configPath()
				if err != nil {
					return err
				}
				// flag overrides stay out of the saved file
				saved, err := config.LoadConfigFile(path)
				if err != nil {
					saved = config.New()
				}
				saved.ApplyTheme(set)
				if err := config.SaveConfig(saved, path); err != nil {
					return err
				}
				cli.SetTheme(set)
				cli.PrintSuccess(out, fmt.Sprintf("Theme set to %s in %s", set, path))
				return nil
			}

			cli.PrintHeader(out, "Themes")
			for _, name := range cli.GetThemeNames() {
				marker := "  "
				if name == opts.cfg.Display.Theme {
					marker = "* "
				}
				fmt.Fprintln(out, marker+name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&set, "set", "", "save this theme to the config file")

	return cmd
}
