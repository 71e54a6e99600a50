package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
}

type OriginsConfig struct {
	DocsRS   string `mapstructure:"docs_rs"`
	CratesIO string `mapstructure:"crates_io"`
}

type Config struct {
	HTTP     HTTPConfig    `mapstructure:"http"`
	Origins  OriginsConfig `mapstructure:"origins"`
	LogLevel string        `mapstructure:"log_level"`
}

func InitializeViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "rust-docs-mcp-server"))
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "rust-docs-mcp-server"))
	}

	viper.SetDefault("http.timeout_seconds", 10)
	viper.SetDefault("http.user_agent", "rust-docs-mcp-server/0.2.0 (https://github.com/timjonaswechler/rust-docs-mcp-server)")
	viper.SetDefault("origins.docs_rs", "https://docs.rs")
	viper.SetDefault("origins.crates_io", "https://crates.io")
	viper.SetDefault("log_level", "info")

	viper.SetEnvPrefix("RUSTDOCS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

func Load() (*Config, error) {
	if err := InitializeViper(); err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
