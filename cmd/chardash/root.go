package main

import (
	"io"
	"time"

	"chardash/cmd/chardash/cli"
	"chardash/internal/api"
	"chardash/internal/config"
	"chardash/internal/errors"
	"chardash/internal/log"
	"chardash/internal/store"

	"github.com/spf13/cobra"
)

// rootOptions carries the global flags and the config they resolve to.
type rootOptions struct {
	cfgFile string
	debug   bool
	baseURL string

	cfg *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "chardash",
		Short: "A terminal dashboard for Disney characters",
		Long: `chardash browses the public Disney character API from your terminal.
Run it without a subcommand to open the dashboard.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/chardash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "character API root (overrides config)")

	rootCmd.AddCommand(newTUICmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newThemesCmd(opts))

	return rootCmd
}

// configPath is --config or the default location.
func (o *rootOptions) configPath() (string, error) {
	if o.cfgFile != "" {
		return o.cfgFile, nil
	}
	return config.DefaultPath()
}

// load resolves the config and points logging at stderr. A config file
// that cannot be used falls back to defaults with a warning; bad flag
// values are an error.
func (o *rootOptions) load(cmd *cobra.Command) error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		cli.PrintWarning(cmd.ErrOrStderr(), err.Error())
		cli.PrintInfo(cmd.ErrOrStderr(), "Using default settings.")
		o.cfg = config.New()
	}

	if cmd.Flags().Changed("base-url") {
		o.cfg.API.BaseURL = o.baseURL
	}
	if cmd.Flags().Changed("debug") {
		o.cfg.Logging.Debug = o.debug
	}
	if err := o.cfg.Validate(); err != nil {
		return err
	}

	log.Configure(log.WithOutput(cmd.ErrOrStderr()))
	log.SetDebug(o.cfg.Logging.Debug)
	cli.SetTheme(o.cfg.Display.Theme)
	return nil
}

// quietLogs keeps log lines off a terminal the TUI owns.
func (o *rootOptions) quietLogs() {
	if o.cfg.Logging.File != "" {
		log.Configure(log.WithFile(o.cfg.Logging.File))
		return
	}
	log.SetOutput(io.Discard)
}

func (o *rootOptions) newClient() *api.Client {
	return api.New(
		api.WithBaseURL(o.cfg.API.BaseURL),
		api.WithTimeout(time.Duration(o.cfg.API.TimeoutSeconds)*time.Second),
		api.WithRateLimit(o.cfg.API.RequestsPerSecond),
	)
}

func (o *rootOptions) newStore(fetcher api.PageFetcher, pageSize int) (*store.Store, error) {
	if pageSize == 0 {
		pageSize = o.cfg.Display.PageSize
	}
	if pageSize < 0 {
		return nil, errors.NewInvalidInputError("page size must be positive", nil).WithContext("page_size", pageSize)
	}
	return store.New(fetcher,
		store.WithPageSize(pageSize),
		store.WithMaxPages(o.cfg.API.MaxPages),
		store.WithLogger(log.LogWithFields(log.F("component", "store"))),
	), nil
}
