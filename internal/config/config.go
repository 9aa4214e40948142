package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Token           string
	DatabaseURL     string
	GuildID         string
	DefaultLocale   string
	RenderQueueSize int
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when variables come from the environment (Docker, CI, etc.).
	}

	cfg := &Config{
		Token:         os.Getenv("TOKEN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		GuildID:       os.Getenv("GUILD_ID"),
		DefaultLocale: os.Getenv("DEFAULT_LOCALE"),
	}
	if raw := os.Getenv("RENDER_QUEUE_SIZE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: RENDER_QUEUE_SIZE must be a positive integer, got %q", raw)
		}
		cfg.RenderQueueSize = n
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applies all rules on the loaded configuration.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN is required and cannot be empty")
	}

	if c.GuildID != "" {
		for _, r := range c.GuildID {
			if r < '0' || r > '9' {
				return fmt.Errorf("config: GUILD_ID must be a Discord guild ID (digits only)")
			}
		}
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Useful local default when DATABASE_URL is not provided.
		c.DatabaseURL = "postgres://localhost:5432/guildcal?sslmode=disable"
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}

	if c.DefaultLocale == "" {
		c.DefaultLocale = "en"
	}
	if c.RenderQueueSize == 0 {
		c.RenderQueueSize = 64
	}

	return nil
}
