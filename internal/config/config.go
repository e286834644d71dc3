// Package config loads editor configuration from a TOML file, falling back
// to defaults for anything absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the user-tunable editor settings.
type Config struct {
	// TabWidth is the fixed column width used for indentation.
	TabWidth int `toml:"tab_width"`

	// UndoDebounceMS is the typing pause, in milliseconds, after which the
	// next edit starts a new undo group.
	UndoDebounceMS int `toml:"undo_debounce_ms"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Comments maps file extensions (without dot) to line-comment tokens.
	Comments map[string]string `toml:"comments"`

	// LSP maps file extensions to language server commands.
	LSP map[string][]string `toml:"lsp"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TabWidth:       4,
		UndoDebounceMS: 500,
		LogLevel:       "info",
		Comments: map[string]string{
			"go":   "//",
			"c":    "//",
			"h":    "//",
			"rs":   "//",
			"js":   "//",
			"ts":   "//",
			"py":   "#",
			"sh":   "#",
			"toml": "#",
			"yml":  "#",
			"yaml": "#",
			"lua":  "--",
			"sql":  "--",
		},
		LSP: map[string][]string{
			"go": {"gopls"},
		},
	}
}

// Load reads a TOML config file over the defaults. A missing file yields
// the defaults; a malformed file yields the defaults plus an error so the
// caller can report it without dying.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.sanitize()
	return cfg, nil
}

// DefaultPath returns the conventional config location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "scribe", "config.toml")
}

func (c *Config) sanitize() {
	if c.TabWidth <= 0 || c.TabWidth > 16 {
		c.TabWidth = 4
	}
	if c.UndoDebounceMS <= 0 {
		c.UndoDebounceMS = 500
	}
	if c.Comments == nil {
		c.Comments = Default().Comments
	}
}

// UndoDebounce returns the debounce as a duration.
func (c Config) UndoDebounce() time.Duration {
	return time.Duration(c.UndoDebounceMS) * time.Millisecond
}

// CommentToken returns the line-comment token for a file path, or "" when
// the extension is unknown.
func (c Config) CommentToken(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return c.Comments[ext]
}

// LSPCommand returns the language server command for a file path, or nil.
func (c Config) LSPCommand(path string) []string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return c.LSP[ext]
}
