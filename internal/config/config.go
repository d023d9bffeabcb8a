package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL  string `env:"DATABASE_URL,required"`
	OpenAIKey    string `env:"OPENAI_API_KEY,required"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIAPIURL string `env:"OPENAI_API_URL" envDefault:"https://api.openai.com/v1"`

	// Server
	Port           int    `env:"PORT" envDefault:"3000"`
	PublicHostname string `env:"PUBLIC_HOSTNAME"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
