package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TrainingConfig holds the recognized training options. Values from a
// YAML file act as defaults; explicit CLI flags override them.
type TrainingConfig struct {
	ContentWeight float64 `yaml:"content_weight"`
	CollabWeight  float64 `yaml:"collab_weight"`
	Path          string  `yaml:"path"`
}

func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		ContentWeight: 0.5,
		CollabWeight:  0.5,
		Path:          "models/recommender.json",
	}
}

// LoadTrainingConfig reads a YAML training config file on top of the
// defaults.
func LoadTrainingConfig(path string) (TrainingConfig, error) {
	cfg := DefaultTrainingConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read training config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse training config: %w", err)
	}
	return cfg, nil
}
