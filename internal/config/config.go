package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"

	"chardash/internal/errors"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the public character API.
	DefaultBaseURL = "https://api.disneyapi.dev"
	// MaxPagesCap bounds every multi-page fetch loop.
	MaxPagesCap = 100
	// EnvPrefix namespaces environment overrides.
	EnvPrefix = "CHARDASH_"
)

// Config represents the application configuration structure.
// It covers the remote API, display defaults, export and logging.
type Config struct {
	API struct {
		BaseURL           string  `yaml:"base_url" env:"BASE_URL"`                       // Root of the character API
		TimeoutSeconds    int     `yaml:"timeout_seconds" env:"TIMEOUT_SECONDS"`         // Per-request timeout
		RequestsPerSecond float64 `yaml:"requests_per_second" env:"REQUESTS_PER_SECOND"` // Client-side pacing, 0 = unlimited
		MaxPages          int     `yaml:"max_pages" env:"MAX_PAGES"`                     // Safety cap for paging loops
	} `yaml:"api" envPrefix:"API_"`
	Display struct {
		PageSize        int    `yaml:"page_size" env:"PAGE_SIZE"` // Rows per table page
		PageSizeOptions []int  `yaml:"page_size_options"`         // Values the page size cycles through
		Locale          string `yaml:"locale" env:"LOCALE"`       // BCP 47 tag used to collate names
		Theme           string `yaml:"theme" env:"THEME"`         // Theme name
	} `yaml:"display" envPrefix:"DISPLAY_"`
	Export struct {
		Directory string `yaml:"directory" env:"DIRECTORY"` // Where spreadsheets are written
	} `yaml:"export" envPrefix:"EXPORT_"`
	Logging struct {
		Debug bool   `yaml:"debug" env:"DEBUG"` // Enable debug lines
		File  string `yaml:"file" env:"FILE"`   // Log file used while the TUI owns the terminal
	} `yaml:"logging" envPrefix:"LOGGING_"`
}

// DefaultPath returns ~/.config/chardash/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chardash", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path, applies
// CHARDASH_* environment overrides and validates the result.
// If the file doesn't exist, defaults are used.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var tempCfg Config
		if err := yaml.Unmarshal(data, &tempCfg); err != nil {
			return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
		}
		cfg.merge(&tempCfg)
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays CHARDASH_* environment variables onto cfg. Unset
// variables leave the current value alone.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.NewConfigError("error parsing environment", EnvPrefix+"*", errors.InvalidConfig, err)
	}
	return nil
}

// merge copies every field set in other onto c.
func (c *Config) merge(other *Config) {
	if other.API.BaseURL != "" {
		c.API.BaseURL = other.API.BaseURL
	}
	if other.API.TimeoutSeconds != 0 {
		c.API.TimeoutSeconds = other.API.TimeoutSeconds
	}
	if other.API.RequestsPerSecond != 0 {
		c.API.RequestsPerSecond = other.API.RequestsPerSecond
	}
	if other.API.MaxPages != 0 {
		c.API.MaxPages = other.API.MaxPages
	}
	if other.Display.PageSize != 0 {
		c.Display.PageSize = other.Display.PageSize
	}
	if len(other.Display.PageSizeOptions) > 0 {
		c.Display.PageSizeOptions = other.Display.PageSizeOptions
	}
	if other.Display.Locale != "" {
		c.Display.Locale = other.Display.Locale
	}
	if other.Display.Theme != "" {
		c.Display.Theme = other.Display.Theme
	}
	if other.Export.Directory != "" {
		c.Export.Directory = other.Export.Directory
	}
	c.Logging.Debug = other.Logging.Debug
	if other.Logging.File != "" {
		c.Logging.File = other.Logging.File
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.API.BaseURL = DefaultBaseURL
	cfg.API.TimeoutSeconds = 15
	cfg.API.RequestsPerSecond = 0
	cfg.API.MaxPages = MaxPagesCap

	cfg.Display.PageSize = 50
	cfg.Display.PageSizeOptions = []int{10, 20, 50, 100, 200, 500}
	cfg.Display.Locale = "en"
	cfg.Display.Theme = "default"

	cfg.Export.Directory = "."

	return cfg
}

// New returns the default configuration.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewConfigError("base url must be an absolute http(s) url", "api.base_url", errors.InvalidConfig, err)
	}
	if c.API.TimeoutSeconds < 1 {
		return errors.NewConfigError("timeout must be >= 1 second", "api.timeout_seconds", errors.InvalidConfig, nil)
	}
	if c.API.RequestsPerSecond < 0 {
		return errors.NewConfigError("requests per second must be >= 0", "api.requests_per_second", errors.InvalidConfig, nil)
	}
	if c.API.MaxPages < 1 || c.API.MaxPages > MaxPagesCap {
		return errors.NewConfigError(fmt.Sprintf("max pages must be between 1 and %d", MaxPagesCap), "api.max_pages", errors.InvalidConfig, nil)
	}

	if c.Display.PageSize <= 0 {
		return errors.NewConfigError("page size must be positive", "display.page_size", errors.InvalidConfig, nil)
	}
	for _, n := range c.Display.PageSizeOptions {
		if n <= 0 {
			return errors.NewConfigError("page size options must be positive", "display.page_size_options", errors.InvalidConfig, nil)
		}
	}
	if len(c.Display.PageSizeOptions) > 0 && !slices.Contains(c.Display.PageSizeOptions, c.Display.PageSize) {
		return errors.NewConfigError(fmt.Sprintf("page size %d is not one of %v", c.Display.PageSize, c.Display.PageSizeOptions), "display.page_size", errors.InvalidConfig, nil)
	}
	if _, err := language.Parse(c.Display.Locale); err != nil {
		return errors.NewConfigError("invalid locale", "display.locale", errors.InvalidConfig, err)
	}
	if !slices.Contains(ListThemes(), c.Display.Theme) {
		return errors.NewConfigError("unknown theme "+c.Display.Theme, "display.theme", errors.InvalidConfig, nil)
	}

	return nil
}

// Language returns the parsed display locale, falling back to English.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Display.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// NextPageSize returns the option after current, wrapping around. delta
// of -1 walks backwards.
func (c *Config) NextPageSize(current, delta int) int {
	opts := c.Display.PageSizeOptions
	if len(opts) == 0 {
		return current
	}
	idx := slices.Index(opts, current)
	if idx < 0 {
		return opts[0]
	}
	idx = (idx + delta + len(opts)) % len(opts)
	return opts[idx]
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig(baseURL string) *Config {
	cfg := defaultConfig()
	cfg.API.BaseURL = baseURL
	cfg.API.TimeoutSeconds = 5
	cfg.Export.Directory = os.TempDir()
	return cfg
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "213", // Purple
		},
		"dark": {
			"primary":  "105",
			"success":  "78",
			"warning":  "214",
			"error":    "160",
			"info":     "33",
			"emphasis": "147",
			"border":   "105",
		},
		"light": {
			"primary":  "135",
			"success":  "150",
			"warning":  "222",
			"error":    "210",
			"info":     "117",
			"emphasis": "219",
			"border":   "135",
		},
		"monochrome": {
			"primary":  "245",
			"success":  "252",
			"warning":  "241",
			"error":    "232",
			"info":     "248",
			"emphasis": "255",
			"border":   "245",
		},
		"ocean": {
			"primary":  "31",
			"success":  "36",
			"warning":  "220",
			"error":    "196",
			"info":     "33",
			"emphasis": "51",
			"border":   "31",
		},
		"sunset": {
			"primary":  "208",
			"success":  "154",
			"warning":  "214",
			"error":    "196",
			"info":     "69",
			"emphasis": "203",
			"border":   "208",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ApplyTheme sets the display theme by name.
func (c *Config) ApplyTheme(name string) {
	c.Display.Theme = name
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome", "ocean", "sunset"}
}
