package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Settings are the CLI defaults a user can persist in a settings file
type Settings struct {
	Format         string `mapstructure:"format"`
	UpcomingLimit  int    `mapstructure:"upcoming_limit"`
	RegulatoryFile string `mapstructure:"regulatory_file"`
	Debug          bool   `mapstructure:"debug"`
}

// DefaultSettings returns the built-in CLI defaults
func DefaultSettings() *Settings {
	return &Settings{
		Format:        "console",
		UpcomingLimit: 5,
	}
}

// LoadSettings reads settings from path. A missing file yields the defaults;
// COMPLIANCE_* environment variables override both.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("COMPLIANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultSettings()
	v.SetDefault("format", def.Format)
	v.SetDefault("upcoming_limit", def.UpcomingLimit)
	v.SetDefault("regulatory_file", def.RegulatoryFile)
	v.SetDefault("debug", def.Debug)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			var pathErr *os.PathError
			if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
				return nil, fmt.Errorf("reading settings %s: %w", path, err)
			}
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	if s.UpcomingLimit < 0 {
		return nil, fmt.Errorf("upcoming_limit cannot be negative")
	}
	return s, nil
}
