package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds s3spectre configuration loaded from .s3spectre.yaml.
type Config struct {
	Provider       string   `yaml:"provider"`
	Regions        []string `yaml:"regions"`
	Profile        string   `yaml:"profile"`
	Project        string   `yaml:"project"`
	Locations      []string `yaml:"locations"`
	MinMonthlyCost float64  `yaml:"min_monthly_cost"`
	Format         string   `yaml:"format"`
	Timeout        string   `yaml:"timeout"`
	Concurrency    int      `yaml:"concurrency"`
	Exclude        Exclude  `yaml:"exclude"`
}

// Exclude defines resources to skip during collection.
type Exclude struct {
	ResourceIDs []string `yaml:"resource_ids"`
	Tags        []string `yaml:"tags"`
}

// TimeoutDuration parses the timeout string as a duration.
func (c Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Load searches for .s3spectre.yaml or .s3spectre.yml in the given directory
// and returns the parsed config. Returns an empty Config if no file is found.
func Load(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".s3spectre.yaml"),
		filepath.Join(dir, ".s3spectre.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}
