package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds the environment driven configuration of the word cloud service.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"word-cloud-service"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8083"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	MaxUploadBytes  int64         `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	Engine        string `env:"WORDCLOUD_ENGINE" envDefault:"cloud"`
	FontFile      string `env:"FONT_FILE"`
	FontMinSize   int    `env:"FONT_MIN_SIZE" envDefault:"10"`
	FontMaxSize   int    `env:"FONT_MAX_SIZE" envDefault:"150"`
	MinWordLength int    `env:"MIN_WORD_LENGTH" envDefault:"2"`

	WordCloudAPIURL     string        `env:"WORDCLOUD_API_URL" envDefault:"https://quickchart.io/wordcloud"`
	WordCloudAPITimeout time.Duration `env:"WORDCLOUD_API_TIMEOUT" envDefault:"15s"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.Engine = strings.ToLower(strings.TrimSpace(cfg.Engine))
	switch cfg.Engine {
	case "cloud", "scatter", "quickchart":
	default:
		return nil, fmt.Errorf("WORDCLOUD_ENGINE must be cloud, scatter or quickchart, got %q", cfg.Engine)
	}

	if cfg.FontMinSize <= 0 || cfg.FontMaxSize < cfg.FontMinSize {
		return nil, fmt.Errorf("font sizes must satisfy 0 < FONT_MIN_SIZE <= FONT_MAX_SIZE, got %d and %d",
			cfg.FontMinSize, cfg.FontMaxSize)
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	return cfg, nil
}

// LoadEnvFiles overlays .env files found in the working directory or its parent.
func LoadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
