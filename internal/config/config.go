package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config holds everything the bot reads from the environment.
type Config struct {
	DiscordToken    string        `env:"DISCORD_TOKEN,required"`
	CommandPrefix   string        `env:"COMMAND_PREFIX" envDefault:"bl!"`
	StoragePath     string        `env:"STORAGE_PATH" envDefault:"database.db"`
	ReputationToken string        `env:"REPUTATION_TOKEN"`
	ReputationURL   string        `env:"REPUTATION_URL" envDefault:"https://api.ksoft.si"`
	DeveloperID     string        `env:"DEVELOPER_ID"`
	IntakeTimeout   time.Duration `env:"INTAKE_TIMEOUT" envDefault:"60s"`
}

func New() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// IsDeveloper reports whether a user ID matches the configured developer.
func IsDeveloper(cfg *Config, userID string) bool {
	return cfg != nil && cfg.DeveloperID != "" && cfg.DeveloperID == userID
}
