// Package config provides configuration loading and management.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/pairshow/pkg/orchestrator"
	"github.com/user/pairshow/pkg/pipeline"
	"github.com/user/pairshow/pkg/stages/composite"
)

// Config represents the full configuration for pairshow.
type Config struct {
	// Frames
	OutputDir string `yaml:"output_dir"` // base directory for job frame folders
	JobName   string `yaml:"job_name"`   // per-job subfolder; empty = random
	Cleanup   bool   `yaml:"cleanup"`    // remove frame folder after encoding

	// Compositing
	Workers     int `yaml:"workers"`      // 0 = number of CPUs
	JPEGQuality int `yaml:"jpeg_quality"` // frame encode quality (1-100)

	// Encoding
	FPS        int    `yaml:"fps"`
	FFmpegPath string `yaml:"ffmpeg_path"` // empty = search PATH

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		OutputDir:   "frames",
		Workers:     0,
		JPEGQuality: composite.DefaultJPEGQuality,
		FPS:         pipeline.DefaultFPS,
		LogLevel:    "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToJobConfig converts Config to orchestrator.JobConfig.
func (c Config) ToJobConfig() orchestrator.JobConfig {
	return orchestrator.JobConfig{
		OutputDir: c.OutputDir,
		JobName:   c.JobName,
		FPS:       c.FPS,
		Cleanup:   c.Cleanup,
	}
}
