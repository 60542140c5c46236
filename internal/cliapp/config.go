// Package cliapp wires the compiler pipeline (lexer through emitter)
// to the cobra/viper-driven command-line surface (component L, spec
// §6), grounded on internal/cli/config/config.go's viper load shape and
// cmd/conduit's cobra command layout.
package cliapp

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config resolves the driver's configuration in precedence order:
// KUSHC_* environment variables, an optional kush.yaml/kush.toml
// project file, then these defaults (AMBIENT STACK, SPEC_FULL.md §1).
// The build command layers its --log, --import-path and --core-api
// flags over the result itself.
type Config struct {
	ImportPaths []string `mapstructure:"import_path"`
	LogLevel    string   `mapstructure:"log_level"`
	CoreAPI     bool     `mapstructure:"core_api"`
}

// Load builds a Config from the KUSHC_ environment prefix and an
// optional kush.yaml/kush.toml in the working directory. flags is
// bound under the flags' own names (log, import-path, core-api), which
// are not the keys the Config fields read.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("import_path", []string{"."})
	v.SetDefault("log_level", "info")
	v.SetDefault("core_api", false)

	v.SetConfigName("kush")
	v.AddConfigPath(".")
	v.SetEnvPrefix("KUSHC")
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if env := os.Getenv("KUSHC_IMPORT_PATH"); env != "" {
		v.Set("import_path", strings.Split(env, ":"))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
