package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	FetchConfig struct {
		FontHost  string        `yaml:"font_host" validate:"required,url"`
		UserAgent string        `yaml:"user_agent"`
		Proxy     SecretString  `yaml:"proxy,omitempty" validate:"omitempty,url"`
		Timeout   time.Duration `yaml:"timeout" validate:"gte=0"`
		Workers   int           `yaml:"workers" validate:"min=1,max=32"`
	}

	// DefaultsConfig holds values used for @font-face properties absent in
	// the source stylesheet.
	DefaultsConfig struct {
		Style   string `yaml:"style" validate:"required,oneof=normal italic oblique"`
		Weight  string `yaml:"weight" validate:"required"`
		Display string `yaml:"display" validate:"required,oneof=auto block swap fallback optional"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Fetch     FetchConfig    `yaml:"fetch"`
		Defaults  DefaultsConfig `yaml:"defaults"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// decodeOver superimposes YAML document on top of cfg. Unknown keys are
// errors, so typos in configuration file do not go unnoticed.
func decodeOver(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return nil
}

// LoadConfiguration expands embedded configuration template, puts values
// from the file at path (if any) on top of it and checks the result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg := &Config{}
	if err := decodeOver(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}

	if len(path) > 0 {
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := decodeOver(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to process configuration file: %w", err)
		}
	}

	if err := gencfg.Sanitize(cfg); err != nil {
		return nil, err
	}
	if err := gencfg.Validate(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Fetch.check(); err != nil {
		return nil, err
	}
	if err := cfg.Defaults.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (conf *FetchConfig) check() error {
	u, err := url.Parse(conf.FontHost)
	if err != nil {
		return fmt.Errorf("bad font host: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || len(u.Host) == 0 {
		return fmt.Errorf("font host must be absolute http(s) url, got %q", conf.FontHost)
	}
	return nil
}

func (conf *DefaultsConfig) check() error {
	switch conf.Weight {
	case "normal", "bold", "bolder", "lighter":
		return nil
	}
	if w, err := strconv.Atoi(conf.Weight); err != nil || w < 1 || w > 1000 {
		return fmt.Errorf("default weight must be keyword or number in [1, 1000], got %q", conf.Weight)
	}
	return nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

// Dump returns actual configuration as YAML. Secrets are masked.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
