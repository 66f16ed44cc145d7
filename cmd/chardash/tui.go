package main

import (
	"context"

	"chardash/internal/loader"
	"chardash/internal/log"
	"chardash/internal/tui"
	"chardash/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newTUICmd represents the TUI command
func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the terminal dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	opts.quietLogs()

	s, err := opts.newStore(opts.newClient(), 0)
	if err != nil {
		return err
	}
	tuiOpts := []tui.Option{tui.WithContext(ctx)}

	// Hot reload is optional; the dashboard runs without it.
	if path, err := opts.configPath(); err == nil {
		if w, err := watch.New(path); err != nil {
			log.LogWithError(err).Warn("config hot reload disabled")
		} else if err := w.Start(); err != nil {
			log.LogWithError(err).Warn("config hot reload disabled")
		} else {
			defer w.Stop()
			tuiOpts = append(tuiOpts, tui.WithReloads(w.Reloads()))
		}
	}

	m := tui.New(opts.cfg, s, loader.New(s), tuiOpts...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	_, err = p.Run()
	return err
}
