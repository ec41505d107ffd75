package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. PTIMER_LOGGING_LEVEL.
const EnvPrefix = "PTIMER"

// Config holds the runtime configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Window  WindowConfig  `mapstructure:"window"`
}

// LoggingConfig defines log output settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or text
}

// WindowConfig defines startup window behaviour.
type WindowConfig struct {
	StartHidden bool `mapstructure:"start_hidden"`
}

// Load reads configuration from defaults, an optional file, the environment
// and any bound command-line flags, in increasing order of precedence.
// An empty configPath or a missing file falls back to defaults.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("window.start_hidden", false)
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"log-level":  "logging.level",
	"log-format": "logging.format",
	"hidden":     "window.start_hidden",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func validate(config *Config) error {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", config.Logging.Level)
	}

	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	switch config.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", config.Logging.Format)
	}
	return nil
}
