package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/seliv/sysvitals/internal/errors"
	"codeberg.org/seliv/sysvitals/internal/prefs"
	"codeberg.org/seliv/sysvitals/internal/scheduler"
)

// DefaultLogLevel is used when no level is configured.
const DefaultLogLevel = "info"

// Config carries the daemon's runtime options. Interval and Scale are
// clamped during load; downstream code can trust the bounds.
type Config struct {
	Interval int    `mapstructure:"interval"`
	Scale    int    `mapstructure:"scale"`
	PrefsDB  string `mapstructure:"prefs_db"`
	Monitor  bool   `mapstructure:"monitor"`
	Debug    bool   `mapstructure:"debug"`
	Verbose  bool   `mapstructure:"verbose"`
	LogLevel string `mapstructure:"log_level"`

	// IntervalSet and ScaleSet report whether the user supplied the
	// value through any layer, as opposed to inheriting the package
	// default. Preference reconciliation needs the distinction; the
	// values alone cannot carry it when the user explicitly asks for
	// the default.
	IntervalSet bool `mapstructure:"-"`
	ScaleSet    bool `mapstructure:"-"`
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warning": true,
	"error":   true,
}

// Load reads configuration from the TOML config file, environment and
// command-line flags, in increasing priority.
func Load() (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	v.SetDefault("interval", prefs.DefaultIntervalSec)
	v.SetDefault("scale", prefs.DefaultScale)
	v.SetDefault("prefs_db", defaultPrefsDBPath())
	v.SetDefault("monitor", false)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", DefaultLogLevel)

	flags := pflag.NewFlagSet("sysvitals", pflag.ContinueOnError)
	flags.Int("interval", prefs.DefaultIntervalSec, "Polling interval in seconds")
	flags.Int("scale", prefs.DefaultScale, "Display scale")
	flags.String("prefs-db", "", "Path to the preferences database")
	flags.Bool("monitor", false, "Log each published snapshot")
	flags.Bool("debug", false, "Enable debugging mode")
	flags.Bool("verbose", false, "Enable verbose logging")
	flags.String("log-level", "", "Log level (debug, info, warning, error)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	v.SetEnvPrefix("SYSVITALS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := os.Getenv("SYSVITALS_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sysvitals")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "sysvitals"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.WithMessage(errors.ErrReadConfig, "Failed to read config file: "+err.Error())
		}
	}

	// Flags the user actually set override file and env values.
	flags.Visit(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		v.Set(key, f.Value.String())
	})

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	config.IntervalSet = explicitlySet(v, flags, "interval", "interval")
	config.ScaleSet = explicitlySet(v, flags, "scale", "scale")
	levelSet := explicitlySet(v, flags, "log-level", "log_level")

	config.Interval = scheduler.ClampIntervalSec(config.Interval)
	config.Scale = prefs.ClampScale(config.Scale)

	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
	if !validLogLevels[config.LogLevel] {
		return nil, errFactory.WithData(errors.ErrInvalidLogLevel, config.LogLevel)
	}
	if config.Debug {
		config.LogLevel = "debug"
	} else if config.Verbose && !levelSet {
		config.LogLevel = "info"
	}

	return config, nil
}

// explicitlySet reports whether the user supplied a value through a
// flag, the config file or the environment.
func explicitlySet(v *viper.Viper, flags *pflag.FlagSet, flagName, key string) bool {
	if flags.Changed(flagName) || v.InConfig(key) {
		return true
	}

	return os.Getenv("SYSVITALS_"+strings.ToUpper(key)) != ""
}

func defaultPrefsDBPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}

	return filepath.Join(dir, "sysvitals", "prefs.db")
}
