// Package config loads winspell settings from defaults, an optional config
// file, WINSPELL_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Alfex4936/winspell/winspell"
)

// EnvPrefix prefixes every environment variable, e.g. WINSPELL_LOCALE or
// WINSPELL_SERVER_ADDR.
const EnvPrefix = "WINSPELL"

// Config is the merged configuration of both commands.
type Config struct {
	Locale   string         `mapstructure:"locale"`
	Dict     string         `mapstructure:"dict"`
	Format   string         `mapstructure:"format"`
	Hunspell HunspellConfig `mapstructure:"hunspell"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// HunspellConfig selects hunspell dictionaries on hosts without the
// Windows service.
type HunspellConfig struct {
	DictDir string `mapstructure:"dict_dir"`
}

// ServerConfig configures winspell-server.
type ServerConfig struct {
	Addr    string        `mapstructure:"addr"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig configures the charmbracelet logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text | json
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Locale: winspell.DefaultLocale,
		Format: "json",
		Server: ServerConfig{Addr: ":8080", Timeout: 8 * time.Second},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load merges defaults, the file at path (if not empty), the environment
// and flags. Only flags the user actually set override lower layers.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("locale", d.Locale)
	v.SetDefault("dict", d.Dict)
	v.SetDefault("format", d.Format)
	v.SetDefault("hunspell.dict_dir", d.Hunspell.DictDir)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.timeout", d.Server.Timeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return
			}
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("config: bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"locale":            "locale",
	"dict":              "dict",
	"format":            "format",
	"hunspell-dict-dir": "hunspell.dict_dir",
	"addr":              "server.addr",
	"timeout":           "server.timeout",
	"log-level":         "log.level",
	"log-format":        "log.format",
}

// Logger builds the command logger described by c.Log.
func (c *Config) Logger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log.level: %w", err)
	}
	opts := log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportTimestamp: true,
	}
	switch c.Log.Format {
	case "", "text":
		opts.Formatter = log.TextFormatter
	case "json":
		opts.Formatter = log.JSONFormatter
	default:
		return nil, fmt.Errorf("config: unknown log.format %q", c.Log.Format)
	}
	return log.NewWithOptions(w, opts), nil
}

// CheckerOptions translates c into winspell construction options.
func (c *Config) CheckerOptions(logger *log.Logger) []winspell.Option {
	opts := []winspell.Option{winspell.WithLogger(logger)}
	if c.Hunspell.DictDir != "" {
		opts = append(opts, winspell.WithHunspellDictDir(c.Hunspell.DictDir))
	}
	return opts
}
