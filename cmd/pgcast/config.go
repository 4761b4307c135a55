package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const defaultConfigFile = "pgcast.yaml"

// cliConfig is loaded from the config file, PGCAST_ environment variables and flags, in increasing order of
// precedence.
type cliConfig struct {
	Database     string `koanf:"database"`
	DateStyle    string `koanf:"datestyle"`
	DecimalPoint string `koanf:"decimal_point"`
	RawBool      bool   `koanf:"raw_bool"`
	RawJSON      bool   `koanf:"raw_json"`
	LogLevel     string `koanf:"log_level"`
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		DateStyle:    "ISO, MDY",
		DecimalPoint: ".",
		LogLevel:     "none",
	}
}

// loadConfig loads the configuration. A missing cfgFile is an error; a missing default config file is not.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (*cliConfig, error) {
	k := koanf.New(".")

	if cfgFile == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			cfgFile = defaultConfigFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// PGCAST_DECIMAL_POINT -> decimal_point
	if err := k.Load(env.Provider("PGCAST_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PGCAST_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	cfg := defaultCLIConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
