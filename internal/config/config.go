package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Protocol ProtocolConfig `yaml:"protocol"`
	Bot      BotConfig      `yaml:"bot"`
	Chat     ChatConfig     `yaml:"chat"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type ProtocolConfig struct {
	// FallbackVersion is used when the status probe fails.
	FallbackVersion int32 `yaml:"fallback_version"`
}

const (
	AuthOffline   = "offline"
	AuthMicrosoft = "microsoft"
)

type BotConfig struct {
	Username string `yaml:"username"`
	Auth     string `yaml:"auth"`
	ClientID string `yaml:"client_id"`
}

type ChatConfig struct {
	EchoMarker    string  `yaml:"echo_marker"`
	RatePerSecond float64 `yaml:"rate_per_second"` // 0 disables throttling
	Burst         int     `yaml:"burst"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func Default() *Config {
	return &Config{
		Server:   ServerConfig{Host: "127.0.0.1", Port: 25565},
		Protocol: ProtocolConfig{FallbackVersion: 340},
		Bot:      BotConfig{Username: "RelayBot", Auth: AuthOffline},
		Chat:     ChatConfig{EchoMarker: "unhandled: ", Burst: 1},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Server.Host == "" {
		errs = append(errs, errors.New("server.host is empty"))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Bot.Username == "" {
		errs = append(errs, errors.New("bot.username is empty"))
	}
	switch c.Bot.Auth {
	case AuthOffline:
	case AuthMicrosoft:
		if c.Bot.ClientID == "" {
			errs = append(errs, errors.New("bot.client_id is required for microsoft auth"))
		}
	default:
		errs = append(errs, fmt.Errorf("bot.auth %q is not offline or microsoft", c.Bot.Auth))
	}
	if c.Chat.RatePerSecond < 0 {
		errs = append(errs, errors.New("chat.rate_per_second is negative"))
	}
	if c.Chat.RatePerSecond > 0 && c.Chat.Burst < 1 {
		errs = append(errs, errors.New("chat.burst must be at least 1"))
	}
	return errors.Join(errs...)
}

// Addr is the server address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
