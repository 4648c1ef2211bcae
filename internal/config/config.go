package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full server configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
}

// ServerConfig configures the websocket gateway.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// GameConfig configures engine behavior.
type GameConfig struct {
	// Verbose enables per-stat delta sub-events on match event sinks.
	// It affects log verbosity only, never game outcomes.
	Verbose bool `mapstructure:"verbose"`

	// Seed, when non-zero, fixes every match's shuffle source. Useful
	// for reproducing a match; leave zero in normal operation.
	Seed int64 `mapstructure:"seed"`

	// EventBufferSize bounds the retained event tail per match.
	EventBufferSize int `mapstructure:"event_buffer_size"`
}

// Load reads configuration from an optional yaml file and DUEL_* env
// variables, applying defaults for anything unset.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)
	v.SetDefault("game.verbose", false)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.event_buffer_size", 512)

	v.SetEnvPrefix("DUEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
