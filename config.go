package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the process-wide configuration, built once at startup and
// passed down explicitly.
type Config struct {
	ThreadsPerGame int    `mapstructure:"threads_per_game" yaml:"threads_per_game"`
	Timeout        int64  `mapstructure:"timeout" yaml:"timeout"`
	MaxDepth       int    `mapstructure:"max_depth" yaml:"max_depth"`
	Port           int    `mapstructure:"port" yaml:"port"`
	Name           string `mapstructure:"name" yaml:"name"`

	ReplayBucket string `mapstructure:"replay_bucket" yaml:"replay_bucket"`
	EngineURL    string `mapstructure:"engine_url" yaml:"engine_url"`
	// WebhookSecret is the Secret Manager resource name holding the
	// notification webhook URL; empty disables notifications.
	WebhookSecret string `mapstructure:"webhook_secret" yaml:"webhook_secret"`

	Duels       DuelsWeights       `mapstructure:"duels" yaml:"duels"`
	Royale      RoyaleWeights      `mapstructure:"royale" yaml:"royale"`
	RoyaleDuels RoyaleDuelsWeights `mapstructure:"royale_duels" yaml:"royale_duels"`
	Standard    StandardWeights    `mapstructure:"standard" yaml:"standard"`
	Constrictor ConstrictorWeights `mapstructure:"constrictor" yaml:"constrictor"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("threads_per_game", 4)
	v.SetDefault("timeout", 444)
	v.SetDefault("max_depth", 32)
	v.SetDefault("port", 8005)
	v.SetDefault("name", "bamboozle snake")
	v.SetDefault("replay_bucket", "")
	v.SetDefault("engine_url", "wss://engine.battlesnake.com")
	v.SetDefault("webhook_secret", "")
}

// LoadConfig reads the configuration from defaults, an optional
// bamboozle.yaml in the working directory or /etc/bamboozle, and
// BAMBOOZLE_* environment variables, in increasing priority.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("bamboozle")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/bamboozle")

	v.SetEnvPrefix("BAMBOOZLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine, a broken one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Duels:       DefaultDuelsWeights(),
		Royale:      DefaultRoyaleWeights(),
		RoyaleDuels: DefaultRoyaleDuelsWeights(),
		Standard:    DefaultStandardWeights(),
		Constrictor: DefaultConstrictorWeights(),
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ThreadsPerGame < 1 {
		return fmt.Errorf("threads_per_game must be at least 1, got %d", c.ThreadsPerGame)
	}
	if c.Timeout < 1 {
		return fmt.Errorf("timeout must be positive, got %d", c.Timeout)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	return nil
}

// DumpYAML renders the effective configuration, used at startup for
// debugging.
func (c *Config) DumpYAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(out), nil
}
