package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/pagebind/internal/logging"
	"github.com/rshade/pagebind/internal/pagination"
	"github.com/rshade/pagebind/internal/source"
)

// Config file defaults.
const (
	SchemaVersion       = "1.0.0"
	schemaConstraint    = ">= 1.0.0, < 2.0.0"
	configDirName       = ".pagebind"
	configFileName      = "config.yaml"
	logDirName          = "logs"
	logFileName         = "pagebind.log"
	defaultPageSize     = 5
	defaultSeedRows     = 100
	defaultFetchTimeout = 10 * time.Second
	maxPageSizeKeys     = 4
	resourcePrefix      = "@"
)

// Source kinds.
const (
	SourceMemory = "memory"
	SourceSQLite = "sqlite"
)

// Environment variables read by Load.
const (
	EnvHome      = "PAGEBIND_HOME"
	EnvConfig    = "PAGEBIND_CONFIG"
	EnvLogLevel  = "PAGEBIND_LOG_LEVEL"
	EnvLogFormat = "PAGEBIND_LOG_FORMAT"
)

// Validation errors.
var (
	ErrUnsupportedSchema = errors.New("unsupported schema_version")
	ErrInvalidSourceKind = errors.New("invalid source kind")
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidLogFormat  = errors.New("invalid log format")
	ErrInvalidPageSizes  = errors.New("invalid page_sizes")
	ErrConfigExists      = errors.New("config file already exists")
)

// Config is the pagebind configuration file.
type Config struct {
	SchemaVersion string            `yaml:"schema_version"`
	Pagination    PaginationConfig  `yaml:"pagination"`
	Empty         EmptyConfig       `yaml:"empty"`
	Resources     map[string]string `yaml:"resources,omitempty"`
	Source        SourceConfig      `yaml:"source"`
	Logging       LoggingConfig     `yaml:"logging"`
}

// PaginationConfig holds the list binding options.
type PaginationConfig struct {
	PageSize          int   `yaml:"page_size"`
	PageSizes         []int `yaml:"page_sizes,omitempty"`
	Threshold         int   `yaml:"threshold"`
	RefreshEnabled    bool  `yaml:"refresh_enabled"`
	EmptyViewEnabled  bool  `yaml:"empty_view_enabled"`
	LoadingRowEnabled bool  `yaml:"loading_row_enabled"`
	LoadingRowSpan    int   `yaml:"loading_row_span"`
	// LoadingRowText is a format string given the page being loaded.
	LoadingRowText string `yaml:"loading_row_text,omitempty"`
	Columns        int    `yaml:"columns"`
}

// EmptyConfig configures the empty-state view. Text values starting with
// "@" name an entry in Resources.
type EmptyConfig struct {
	Title        string `yaml:"title,omitempty"`
	Message      string `yaml:"message,omitempty"`
	Image        string `yaml:"image,omitempty"`
	TitleColor   string `yaml:"title_color,omitempty"`
	MessageColor string `yaml:"message_color,omitempty"`
}

// SourceConfig selects and configures the data source.
type SourceConfig struct {
	Kind         string        `yaml:"kind"`
	MaxItems     int           `yaml:"max_items"`
	Latency      time.Duration `yaml:"latency"`
	Path         string        `yaml:"path,omitempty"`
	Seed         int           `yaml:"seed"`
	Sort         string        `yaml:"sort,omitempty"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SchemaVersion: SchemaVersion,
		Pagination: PaginationConfig{
			PageSize:          defaultPageSize,
			PageSizes:         []int{5, 10, 15, 20},
			Threshold:         pagination.DefaultThreshold,
			RefreshEnabled:    true,
			EmptyViewEnabled:  true,
			LoadingRowEnabled: true,
			LoadingRowSpan:    pagination.DefaultLoadingRowSpan,
			Columns:           1,
		},
		Empty: EmptyConfig{
			Title:   "@empty_title",
			Message: "@empty_message",
			Image:   "∅",
		},
		Resources: map[string]string{
			"empty_title":   "No data found",
			"empty_message": "Press r to refresh",
		},
		Source: SourceConfig{
			Kind:         SourceMemory,
			MaxItems:     source.DefaultMaxItems,
			Latency:      source.DefaultLatency,
			Seed:         defaultSeedRows,
			FetchTimeout: defaultFetchTimeout,
		},
		Logging: LoggingConfig{
			Level:  zerolog.InfoLevel.String(),
			Format: logging.FormatConsole,
		},
	}
}

// GetConfigDir returns the pagebind configuration directory.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// DefaultPath returns the config file path, honoring PAGEBIND_CONFIG.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// DefaultLogPath returns the log file used by the interactive browser.
func DefaultLogPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logDirName, logFileName), nil
}

// Load reads the config at path over the defaults, applies environment
// overrides and validates the result. An empty path means DefaultPath; a
// missing default file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
		explicit = os.Getenv(EnvConfig) != ""
	}

	if _, err := os.Stat(path); err == nil {
		if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
			return nil, mergeErr
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies PAGEBIND_LOG_LEVEL and PAGEBIND_LOG_FORMAT.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := validateSchema(c.SchemaVersion); err != nil {
		return err
	}
	if err := c.PaginationOptions().Validate(); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if len(c.Pagination.PageSizes) > maxPageSizeKeys {
		return fmt.Errorf("%w: at most %d sizes", ErrInvalidPageSizes, maxPageSizeKeys)
	}
	for _, n := range c.Pagination.PageSizes {
		if n < pagination.MinPageElementCount {
			return fmt.Errorf("%w: %d", ErrInvalidPageSizes, n)
		}
	}

	switch c.Source.Kind {
	case SourceMemory:
	case SourceSQLite:
		if c.Source.Path == "" {
			return fmt.Errorf("%w: sqlite requires source.path", ErrInvalidSourceKind)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSourceKind, c.Source.Kind)
	}
	if _, _, err := source.NewSorter().ParseSort(c.Source.Sort); err != nil {
		return fmt.Errorf("source.sort: %w", err)
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	switch c.Logging.Format {
	case logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	return nil
}

// validateSchema checks that the file's schema version is one this build reads.
func validateSchema(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedSchema, version)
	}
	constraint, err := semver.NewConstraint(schemaConstraint)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, v, schemaConstraint)
	}
	return nil
}

// PaginationOptions converts the pagination and empty sections.
func (c *Config) PaginationOptions() pagination.Options {
	p := c.Pagination
	opts := pagination.DefaultOptions(p.PageSize)
	opts.Threshold = p.Threshold
	opts.RefreshEnabled = p.RefreshEnabled
	opts.EmptyViewEnabled = p.EmptyViewEnabled
	opts.LoadingRowEnabled = p.LoadingRowEnabled
	opts.LoadingRowSpan = p.LoadingRowSpan
	opts.Empty = pagination.EmptyContent{
		Title:        toText(c.Empty.Title),
		Message:      toText(c.Empty.Message),
		Image:        toText(c.Empty.Image),
		TitleColor:   c.Empty.TitleColor,
		MessageColor: c.Empty.MessageColor,
	}
	if p.LoadingRowText != "" {
		format := p.LoadingRowText
		opts.LoadingRowRenderer = func(nextPage int) string {
			if !strings.Contains(format, "%") {
				return format
			}
			return fmt.Sprintf(format, nextPage)
		}
	}
	return opts
}

// Layout returns the list layout.
func (c *Config) Layout() pagination.Layout {
	return pagination.GridLayout(c.Pagination.Columns)
}

// SortSpec returns the parsed source.sort value.
func (c *Config) SortSpec() (field, order string) {
	field, order, _ = source.NewSorter().ParseSort(c.Source.Sort)
	return field, order
}

// toText turns a config string into pagination text; "@name" is a resource reference.
func toText(s string) pagination.Text {
	if name, ok := strings.CutPrefix(s, resourcePrefix); ok && name != "" {
		return pagination.Ref(name)
	}
	return pagination.Literal(s)
}

// WriteDefault writes the default configuration to path. It refuses to
// overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshalling default config: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o750); mkdirErr != nil {
		return fmt.Errorf("creating config directory: %w", mkdirErr)
	}
	if writeErr := os.WriteFile(path, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing config %s: %w", path, writeErr)
	}
	return nil
}
