package config

import (
	_ "embed"
)

//go:embed defaults/starpath.yaml
var defaultYAML []byte

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Player: PlayerConfig{
			Name:        "player",
			DisplayName: "Player",
		},
		Storage: StorageConfig{
			DBPath: "~/.starpath/progress.db",
		},
		Runtime: RuntimeConfig{
			TickRate: 60,
		},
		Log: LogConfig{
			Level:      "info",
			Timestamps: true,
		},
		Payment: PaymentConfig{
			Memo: "starpath purchase",
		},
	}
}
