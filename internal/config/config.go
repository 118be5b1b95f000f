// Package config provides settings file handling for plistutil.
//
// Settings files are optional. The format is chosen by extension: .toml for
// TOML, .ini/.conf/.cfg for INI (keys in the default section).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/thirteen37/plistutil/internal/codec"
	"github.com/thirteen37/plistutil/internal/logging"
	"gopkg.in/ini.v1"
)

// Settings holds defaults that command-line flags override.
type Settings struct {
	// Format is the output format when --format is not given.
	Format string `toml:"format" ini:"format"`

	// Indent is "tab", a number of spaces, or a literal indentation string.
	Indent string `toml:"indent" ini:"indent"`

	StripComments bool   `toml:"strip-comments" ini:"strip-comments"`
	NoColor       bool   `toml:"no-color" ini:"no-color"`
	LogLevel      string `toml:"log-level" ini:"log-level"`
}

// Defaults returns the settings used when no settings file exists.
func Defaults() *Settings {
	return &Settings{
		Format:   string(codec.DefaultFormat),
		Indent:   "2",
		LogLevel: "warn",
	}
}

// DefaultPath returns the settings file location under the user's config
// directory, e.g. ~/.config/plistutil/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "plistutil", "config.toml"), nil
}

// Load reads Settings from a file. Keys missing from the file keep their
// default values.
func Load(filename string) (*Settings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Defaults()
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
		}
	case ".ini", ".conf", ".cfg":
		file, err := ini.Load(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if err := file.Section(ini.DefaultSection).MapTo(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file type %q (want .toml or .ini)", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}
	return cfg, nil
}

// LoadDefault loads the settings file at DefaultPath, returning Defaults
// when it does not exist.
func LoadDefault() (*Settings, error) {
	filename, err := DefaultPath()
	if err != nil {
		return Defaults(), nil
	}
	cfg, err := Load(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

// Validate checks that every setting holds a usable value.
func (s *Settings) Validate() error {
	if _, err := codec.ParseFormat(s.Format); err != nil {
		return err
	}
	if _, err := ParseIndent(s.Indent); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseIndent converts an indent setting to the indentation string.
// "tab" means a tab character and a number means that many spaces; any
// other value is used as is.
func ParseIndent(s string) (string, error) {
	if s == "tab" {
		return "\t", nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 16 {
			return "", fmt.Errorf("indent %d out of range (1-16)", n)
		}
		return strings.Repeat(" ", n), nil
	}
	if s == "" {
		return "", fmt.Errorf("empty indent")
	}
	return s, nil
}
