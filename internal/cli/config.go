package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. VOCABGRID_WORDS
const EnvPrefix = "VOCABGRID"

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration. Values come from flags, then
// VOCABGRID_* environment variables, then the config file.
type Config struct {
	ConfigFile string
	Words      string
	Themes     string
	Difficulty string
	State      string
	Seed       uint64
	Output     string
	LogLevel   string
	LogFormat  string
	NoColor    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Output:    OutputText,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// loadConfig resolves the configuration for cmd from its flags, the
// environment and vocabgrid.yaml (in the working directory unless --config is given)
func loadConfig(v *viper.Viper, cmd *cobra.Command) (*Config, error) {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configFile := v.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("vocabgrid")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	c := &Config{
		ConfigFile: v.ConfigFileUsed(),
		Words:      v.GetString("words"),
		Themes:     v.GetString("themes"),
		Difficulty: v.GetString("difficulty"),
		State:      v.GetString("state"),
		Seed:       v.GetUint64("seed"),
		Output:     v.GetString("output"),
		LogLevel:   v.GetString("log-level"),
		LogFormat:  v.GetString("log-format"),
		NoColor:    v.GetBool("no-color"),
	}
	if c.Output != OutputText && c.Output != OutputJSON {
		return nil, fmt.Errorf("invalid output format %q: must be text or json", c.Output)
	}
	return c, nil
}

// Logger builds the slog logger described by the config, writing to w
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch c.LogFormat {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be text or json", c.LogFormat)
	}
}
