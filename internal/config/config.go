// Package config provides YAML-based configuration loading for starpath.
package config

import "github.com/vovakirdan/starpath/internal/core"

// Config is the top-level application configuration.
type Config struct {
	Player  PlayerConfig  `yaml:"player"`
	Storage StorageConfig `yaml:"storage"`
	Content ContentConfig `yaml:"content"`
	Runtime RuntimeConfig `yaml:"runtime"`
	Log     LogConfig     `yaml:"log"`
	Payment PaymentConfig `yaml:"payment"`
}

// PlayerConfig identifies the local player whose progress is tracked.
type PlayerConfig struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
}

// StorageConfig defines where progress is persisted.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ContentConfig defines where world and level files are read from.
type ContentConfig struct {
	Dir string `yaml:"dir"` // Empty uses the embedded worlds
}

// RuntimeConfig defines the headless tick loop.
type RuntimeConfig struct {
	TickRate int `yaml:"tick_rate"`
}

// LogConfig defines logger output.
type LogConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	Timestamps bool   `yaml:"timestamps"`
}

// PaymentConfig defines defaults for purchase requests.
type PaymentConfig struct {
	Memo string `yaml:"memo"`
}

// Core converts the runtime section to the engine's runtime config.
func (r RuntimeConfig) Core() core.RuntimeConfig {
	return core.RuntimeConfig{TickRate: r.TickRate}
}
