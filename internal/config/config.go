package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config path is given. JSON files work too since
// JSON is valid YAML.
const DefaultPath = "arcdbg.yaml"

type Config struct {
	Input        string `yaml:"input" json:"input"`
	Output       string `yaml:"output" json:"output"`
	K            int    `yaml:"k" json:"k"`
	Weight       string `yaml:"weight" json:"weight"`
	SQLitePath   string `yaml:"sqlite_path" json:"sqlite_path"`
	MaxLineBytes int    `yaml:"max_line_bytes" json:"max_line_bytes"`
	Summary      bool   `yaml:"summary" json:"summary"`
	LogFile      string `yaml:"log_file" json:"log_file"`
	LogLevel     string `yaml:"log_level" json:"log_level"`
	LogMaxSizeMB int    `yaml:"log_max_size_mb" json:"log_max_size_mb"`
	LogMaxAge    int    `yaml:"log_max_age_days" json:"log_max_age_days"`
}

// LoadConfig loads a YAML (or JSON) config from path. If path is empty it
// looks for DefaultPath and falls back to defaults when that file is absent;
// an explicit path that cannot be read is an error.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks values that cannot be fixed by defaults.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("no input graph given")
	}
	if c.K < 2 {
		return fmt.Errorf("k must be at least 2, got %d", c.K)
	}
	if c.MaxLineBytes < 0 {
		return fmt.Errorf("max_line_bytes must not be negative, got %d", c.MaxLineBytes)
	}
	return nil
}
