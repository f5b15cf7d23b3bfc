package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"cardroom-server/internal/util"
)

// Config provides configuration for the card room server
type Config struct {
	loaded bool

	Listen string `yaml:"listen" envconfig:"listen"`

	Log struct {
		Level             string `yaml:"level"`
		Format            string `yaml:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}

	Table struct {
		SmallBlind int `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind   int `yaml:"bigBlind" envconfig:"big_blind"`
		MaxBet     int `yaml:"maxBet" envconfig:"max_bet"`
	}

	Timing struct {
		// ActionCooldownMS is the minimum gap between two actions from the
		// same player
		ActionCooldownMS int `yaml:"actionCooldownMs" envconfig:"action_cooldown_ms"`

		// LockTimeoutMS is how long an in-flight action lock lives before it
		// is treated as abandoned
		LockTimeoutMS int `yaml:"lockTimeoutMs" envconfig:"lock_timeout_ms"`

		// AdvanceDelayMS is the display delay between streets of an all-in
		// runout
		AdvanceDelayMS int `yaml:"advanceDelayMs" envconfig:"advance_delay_ms"`

		// TurnTimeoutMS is how long a player may sit on their turn before
		// being folded
		TurnTimeoutMS int `yaml:"turnTimeoutMs" envconfig:"turn_timeout_ms"`
	}
}

// DefaultConfig returns the configuration with every default applied
func DefaultConfig() Config {
	var c Config
	c.Listen = ":5000"
	c.Log.Level = "info"
	c.Table.SmallBlind = 25
	c.Table.BigBlind = 50
	c.Table.MaxBet = 1000000
	c.Timing.ActionCooldownMS = 400
	c.Timing.LockTimeoutMS = 5000
	c.Timing.AdvanceDelayMS = 1000
	c.Timing.TurnTimeoutMS = 30000

	return c
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration. A missing config file is not an error;
// the defaults plus the environment are used instead.
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("CARDROOM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("cardroom", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
