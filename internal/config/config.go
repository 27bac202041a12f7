package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	DefaultAlgorithm = "bwt"
	DefaultInput     = "GTCCCGATGTCATGTCAGGA"
	DefaultQuery     = "GTCC"
	DefaultDelay     = 1.0
	DefaultTheme     = "classic"
	DefaultLogLevel  = "info"
	DefaultExportDir = "runs"

	EnvPrefix = "ALGVIZ_"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Algorithm string  `yaml:"algorithm" koanf:"algorithm"`
	Input     string  `yaml:"input" koanf:"input"`
	Query     string  `yaml:"query" koanf:"query"`
	Delay     float64 `yaml:"delay" koanf:"delay"`
	Theme     string  `yaml:"theme" koanf:"theme"`
	LogLevel  string  `yaml:"log_level" koanf:"log_level"`
	LogFile   string  `yaml:"log_file,omitempty" koanf:"log_file"`
	ExportDir string  `yaml:"export_dir" koanf:"export_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Input:     DefaultInput,
		Query:     DefaultQuery,
		Delay:     DefaultDelay,
		Theme:     DefaultTheme,
		LogLevel:  DefaultLogLevel,
		ExportDir: DefaultExportDir,
	}
}

// Load starts from the defaults, applies the YAML file at path if it
// exists and then the ALGVIZ_* environment (ALGVIZ_LOG_LEVEL -> log_level).
// An empty path skips the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Algorithm == "" {
		return fmt.Errorf("%w: algorithm is required", ErrInvalidConfig)
	}
	if c.Delay <= 0 {
		return fmt.Errorf("%w: delay must be positive, got %g", ErrInvalidConfig, c.Delay)
	}
	if strings.ContainsRune(c.Input, '$') && !strings.HasSuffix(c.Input, "$") {
		return fmt.Errorf("%w: '$' may only end the input", ErrInvalidConfig)
	}
	return nil
}

// Apply copies the preset's inputs over c, keeping c's display settings.
func (c *Config) Apply(p *Config) {
	c.Algorithm = p.Algorithm
	c.Input = p.Input
	if p.Query != "" {
		c.Query = p.Query
	}
	if p.Delay > 0 {
		c.Delay = p.Delay
	}
}
