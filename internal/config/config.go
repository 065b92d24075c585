// Package config loads and validates the YAML run configuration for the
// training driver.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	TrainImages string `yaml:"train_images"`
	TrainLabels string `yaml:"train_labels"`
	TestImages  string `yaml:"test_images"`
	TestLabels  string `yaml:"test_labels"`
	ModelPath   string `yaml:"model_path"`

	Topology     []int   `yaml:"topology"`
	Epochs       int     `yaml:"epochs"`
	LearningRate float32 `yaml:"learning_rate"`
	Seed         int64   `yaml:"seed"`
	LogEvery     int     `yaml:"log_every"`

	Augment AugmentConfig `yaml:"augment"`
}

// AugmentConfig controls on-the-fly synthesis of training variants.
// Copies is the number of augmented variants per sample (0 disables
// augmentation); each variant is shifted by up to ±MaxShift pixels and
// zoomed by a factor in [1−MaxZoom, 1+MaxZoom].
type AugmentConfig struct {
	Copies   int     `yaml:"copies"`
	MaxShift int     `yaml:"max_shift"`
	MaxZoom  float32 `yaml:"max_zoom"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	ModelPath    string
	Epochs       int
	LearningRate float32
	Seed         int64
}

// Default returns the configuration used when a field is left unset.
func Default() *Config {
	return &Config{
		ModelPath:    "model.bin",
		Topology:     []int{784, 128, 10},
		Epochs:       1,
		LearningRate: 0.05,
		Seed:         1,
		LogEvery:     10000,
	}
}

// Load reads and validates a Config from YAML. Unset fields keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.ModelPath != "" {
		c.ModelPath = o.ModelPath
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.TrainImages == "" || c.TrainLabels == "" {
		return errors.New("train_images and train_labels must be set")
	}
	if len(c.Topology) < 2 {
		return fmt.Errorf("topology needs at least 2 widths (got %d)", len(c.Topology))
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.Augment.Copies < 0 {
		return fmt.Errorf("augment.copies must be >= 0 (got %d)", c.Augment.Copies)
	}
	if c.Augment.MaxShift < 0 {
		return fmt.Errorf("augment.max_shift must be >= 0 (got %d)", c.Augment.MaxShift)
	}
	if c.Augment.MaxZoom < 0 || c.Augment.MaxZoom >= 1 {
		return fmt.Errorf("augment.max_zoom must be in [0,1) (got %g)", c.Augment.MaxZoom)
	}
	return nil
}
