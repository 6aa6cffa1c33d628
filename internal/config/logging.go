package config

import (
	"github.com/rs/zerolog"

	"github.com/rshade/pagebind/internal/logging"
)

// ToLoggingConfig converts config.LoggingConfig to logging.Config for use with
// the internal/logging package.
//
// The conversion applies these rules:
//   - Level, Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
//   - debug forces the debug level and caller information
func (lc LoggingConfig) ToLoggingConfig(debug bool) logging.Config {
	cfg := logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: logging.OutputStderr,
		File:   lc.File,
	}
	if lc.File != "" {
		cfg.Output = logging.OutputFile
	}
	if debug {
		cfg.Level = zerolog.DebugLevel.String()
		cfg.Caller = true
	}
	return cfg
}

// WithFile returns a copy that logs to path, unless a file is already set.
// The interactive TUI uses it to keep log lines off the terminal.
func (lc LoggingConfig) WithFile(path string) LoggingConfig {
	if lc.File == "" {
		lc.File = path
	}
	return lc
}
