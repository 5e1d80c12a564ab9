// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/easypass/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Generator GeneratorConfig `toml:"generator"`
	History   HistoryConfig   `toml:"history"`
	UI        UIConfig        `toml:"ui"`
}

// GeneratorConfig maps default generator settings. They apply until settings
// have been saved to the database.
type GeneratorConfig struct {
	Length           *int  `toml:"length"`
	Uppercase        *bool `toml:"uppercase"`
	Lowercase        *bool `toml:"lowercase"`
	Digits           *bool `toml:"digits"`
	Symbols          *bool `toml:"symbols"`
	ExcludeAmbiguous *bool `toml:"exclude-ambiguous"`
	EasyTyping       *bool `toml:"easy-typing"`
}

// HistoryConfig maps history storage settings.
type HistoryConfig struct {
	Limit  *int    `toml:"limit"`
	DBPath *string `toml:"db-path"`
}

// UIConfig maps interface settings.
type UIConfig struct {
	Theme *string `toml:"theme"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ApplyGenerator overlays the values set in the file onto s.
func (c GeneratorConfig) ApplyGenerator(s model.Settings) model.Settings {
	if c.Length != nil {
		s.Length = *c.Length
	}
	applyBool(&s.Uppercase, c.Uppercase)
	applyBool(&s.Lowercase, c.Lowercase)
	applyBool(&s.Digits, c.Digits)
	applyBool(&s.Symbols, c.Symbols)
	applyBool(&s.ExcludeAmbiguous, c.ExcludeAmbiguous)
	applyBool(&s.EasyTyping, c.EasyTyping)
	return s
}

// DefaultSettings returns built-in defaults overlaid with the file values.
func (c FileConfig) DefaultSettings() model.Settings {
	return c.Generator.ApplyGenerator(model.DefaultSettings())
}

// HistoryLimit returns the configured history cap.
func (c FileConfig) HistoryLimit() (int, error) {
	if c.History.Limit == nil {
		return model.DefaultHistoryLimit, nil
	}
	if *c.History.Limit <= 0 {
		return 0, fmt.Errorf("history limit must be > 0")
	}
	return *c.History.Limit, nil
}

// DBPath returns the configured database path or the XDG default.
func (c FileConfig) DBPath() string {
	if c.History.DBPath != nil && *c.History.DBPath != "" {
		return *c.History.DBPath
	}
	return DefaultDBPath()
}

// Theme returns the configured theme, defaulting to dark.
func (c FileConfig) Theme() (model.Theme, error) {
	if c.UI.Theme == nil {
		return model.ThemeDark, nil
	}
	return model.ParseTheme(*c.UI.Theme)
}

func applyBool(target, value *bool) {
	if value == nil {
		return
	}
	*target = *value
}
