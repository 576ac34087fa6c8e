package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/erraggy/opgen/openapi"
)

const (
	envPrefix        = "OPGEN"
	configName       = ".opgen"
	configFileName   = configName + ".yaml"
	defaultOutputDir = "./client"
	defaultLogLevel  = "warn"
	defaultLogFormat = "text"
)

// initConfig wires the config file and OPGEN_* variables into v. A missing
// default config file is fine; a missing explicit one is not.
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	// OPGEN_LOG_LEVEL, OPGEN_CONTINUE_ON_ERROR, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", defaultOutputDir)
	v.SetDefault("content-type-maps", true)
	v.SetDefault("concurrency", 0)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)
}

// newLogger builds the slog handler selected by log.level and log.format.
// Logs always go to w, never to the command's standard output.
func newLogger(v *viper.Viper, w io.Writer) (openapi.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log.level"))); err != nil {
		return nil, fmt.Errorf("invalid log.level %q: %w", v.GetString("log.level"), err)
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format := strings.ToLower(v.GetString("log.format")); format {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log.format %q: must be text or json", format)
	}
	return openapi.NewSlogAdapter(slog.New(handler)), nil
}
