package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papapumpkin/prefab/internal/codec"
)

// EnvPrefix is the prefix of environment variables that override config
// keys. Nested keys use underscores: PREFAB_ENCODE_SORT_OBJECTS.
const EnvPrefix = "PREFAB"

// EncodeConfig controls how documents are written.
type EncodeConfig struct {
	SortObjects        bool   `mapstructure:"sort_objects"`
	SortKeyframes      bool   `mapstructure:"sort_keyframes"`
	CumulativeRotation bool   `mapstructure:"cumulative_rotation"`
	Indent             string `mapstructure:"indent"`
}

// ValidateConfig controls the checks run before encoding.
type ValidateConfig struct {
	StrictParents bool `mapstructure:"strict_parents"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

// Config holds all runtime configuration for the prefab tool.
// Values are populated from .prefab.yaml, PREFAB_* env vars, and CLI flags.
type Config struct {
	Encode   EncodeConfig   `mapstructure:"encode"`
	Validate ValidateConfig `mapstructure:"validate"`
	Log      LogConfig      `mapstructure:"log"`
	Seed     int64          `mapstructure:"seed"`
	OutDir   string         `mapstructure:"out_dir"`
	Verbose  bool           `mapstructure:"verbose"`
}

// SetupEnv makes viper read PREFAB_* environment variables.
func SetupEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("encode.sort_objects", false)
	viper.SetDefault("encode.sort_keyframes", false)
	viper.SetDefault("encode.cumulative_rotation", false)
	viper.SetDefault("encode.indent", "")
	viper.SetDefault("validate.strict_parents", true)
	viper.SetDefault("log.mode", "dev")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("seed", 0)
	viper.SetDefault("out_dir", ".")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// CodecFlags returns the encode flags the codec should run with.
func (c Config) CodecFlags() codec.Flags {
	return codec.Flags{
		SortObjects:        c.Encode.SortObjects,
		SortKeyframes:      c.Encode.SortKeyframes,
		CumulativeRotation: c.Encode.CumulativeRotation,
	}
}
