package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"dropsort/internal/organize"
)

// EnvPrefix is the prefix of environment overrides (DROPSORT_TARGET, ...).
const EnvPrefix = "DROPSORT"

// Category declares one category of a custom table.
type Category struct {
	Name       string   `toml:"name" yaml:"name" validate:"required"`
	Extensions []string `toml:"extensions" yaml:"extensions" validate:"required,min=1"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" yaml:"format" validate:"oneof=console json"`
}

// Config holds every setting the CLI needs. Flags override these values.
type Config struct {
	// Target is the directory to organize; blank means the Downloads folder.
	Target           string     `toml:"target" yaml:"target"`
	IncludeHidden    bool       `toml:"include_hidden" yaml:"include_hidden"`
	OnError          string     `toml:"on_error" yaml:"on_error" validate:"oneof=continue abort"`
	FallbackCategory string     `toml:"fallback_category" yaml:"fallback_category" validate:"required"`
	Categories       []Category `toml:"categories" yaml:"categories" validate:"dive"`
	Logging          Logging    `toml:"logging" yaml:"logging"`
}

// envOverrides mirrors the settings that may come from the environment.
// Fields are strings so an unset variable is distinguishable from false.
type envOverrides struct {
	Target        string `envconfig:"TARGET"`
	IncludeHidden string `envconfig:"INCLUDE_HIDDEN"`
	OnError       string `envconfig:"ON_ERROR"`
	LogLevel      string `envconfig:"LOG_LEVEL"`
	LogFormat     string `envconfig:"LOG_FORMAT"`
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		OnError:          defaultOnError,
		FallbackCategory: string(organize.Other),
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dropsort", "config.toml"), nil
}

// Load builds the effective configuration: defaults, then the file at path
// (or the default location when path is blank and the file exists), then
// DROPSORT_* environment variables. It returns the resolved file path and
// whether a file was read. An explicitly named file must exist.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, nil
	}
	if _, err := os.Stat(defaultPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultPath, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return defaultPath, true, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("load config from env: %w", err)
	}
	if env.Target != "" {
		c.Target = env.Target
	}
	if env.IncludeHidden != "" {
		v, err := strconv.ParseBool(env.IncludeHidden)
		if err != nil {
			return fmt.Errorf("%s_INCLUDE_HIDDEN: %w", EnvPrefix, err)
		}
		c.IncludeHidden = v
	}
	if env.OnError != "" {
		c.OnError = env.OnError
	}
	if env.LogLevel != "" {
		c.Logging.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		c.Logging.Format = env.LogFormat
	}
	return nil
}

// Validate checks field constraints and that the category table builds.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := c.Table(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Table builds the category table. Without configured categories the
// built-in rules are used with the configured fallback.
func (c *Config) Table() (*organize.Table, error) {
	fallback := organize.Category(c.FallbackCategory)
	if len(c.Categories) == 0 {
		if fallback == organize.Other {
			return organize.DefaultTable(), nil
		}
		return organize.NewTable(organize.DefaultRules(), fallback)
	}
	rules := make([]organize.Rule, 0, len(c.Categories))
	for _, cat := range c.Categories {
		rules = append(rules, organize.Rule{
			Category:   organize.Category(cat.Name),
			Extensions: cat.Extensions,
		})
	}
	return organize.NewTable(rules, fallback)
}

// Policy returns the configured error policy.
func (c *Config) Policy() (organize.Policy, error) {
	return organize.ParsePolicy(c.OnError)
}
