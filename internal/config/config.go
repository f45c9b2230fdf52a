package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const DefaultEndpoint = "https://jsonplaceholder.typicode.com/posts"

// Config holds application configuration.
type Config struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Theme    string        `mapstructure:"theme"`
	Log      LogConfig     `mapstructure:"log"`
	Picker   PickerConfig  `mapstructure:"picker"`
}

// LogConfig controls the debug log. An empty File disables logging.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// PickerConfig seeds the file-selection prompt.
type PickerConfig struct {
	Dir          string   `mapstructure:"dir"`
	ShowHidden   bool     `mapstructure:"show_hidden"`
	AllowedTypes []string `mapstructure:"allowed_types"`
}

// New returns a viper instance with defaults, config file lookup and env
// overrides (prefix TODO_). Callers may bind flags on top before Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("theme", "classic")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("picker.dir", ".")
	v.SetDefault("picker.show_hidden", false)
	v.SetDefault("picker.allowed_types", []string{})

	v.SetConfigType("toml")
	if p := os.Getenv("TODO_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "todo"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file if present and decodes v into a Config.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the endpoint is an absolute http(s) URL.
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("config.endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config.endpoint must be an absolute http(s) URL, got %q", c.Endpoint)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config.timeout must not be negative")
	}
	return nil
}
