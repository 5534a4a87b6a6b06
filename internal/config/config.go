// Package config handles build pipeline configuration loading.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fusiondex/dexbuild/internal/model"
)

// Config holds all build pipeline settings.
type Config struct {
	Dataset string             `yaml:"dataset"` // canonical {id,name} list (json/csv/xlsx)
	Sprites SpritesConfig      `yaml:"sprites"`
	Output  OutputConfig       `yaml:"output"`
	Pack    model.PackSettings `yaml:"pack"`
	Logging LoggingConfig      `yaml:"logging"`
}

// SpritesConfig holds sprite input settings.
type SpritesConfig struct {
	Dir     string `yaml:"dir"`     // per-generation sprite directory
	Workers int    `yaml:"workers"` // decode worker pool size; 0 = NumCPU
}

// OutputConfig holds output locations and format toggles.
type OutputConfig struct {
	Dir      string `yaml:"dir"`      // where atlas + sidecar land
	WebP     bool   `yaml:"webp"`     // also write a lossless WebP atlas
	PDF      bool   `yaml:"pdf"`      // write the layout report PDF
	Manifest bool   `yaml:"manifest"` // write the XLSX sprite manifest
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Dataset: "data/pokemon.json",
		Sprites: SpritesConfig{
			Dir:     "sprites",
			Workers: 0,
		},
		Output: OutputConfig{
			Dir:      "out",
			WebP:     false,
			PDF:      true,
			Manifest: true,
		},
		Pack: model.DefaultPackSettings(),
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path or a missing file yields the plain defaults; a malformed file is an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
