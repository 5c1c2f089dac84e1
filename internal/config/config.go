// Package config loads runtime configuration from a .env file (when present)
// and the process environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime option of the bot.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`
	TMDBAPIKey   string `env:"TMDB_API_KEY"`
	TMDBBaseURL  string `env:"TMDB_BASE_URL" envDefault:"https://api.themoviedb.org/3"`
	MemeURL      string `env:"REDDIT_MEME_URL" envDefault:"https://www.reddit.com/r/memes/top.json?limit=1"`

	// SessionTTL bounds the lifetime of a pagination session.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"300s"`

	StoragePath string `env:"STORAGE_PATH" envDefault:"data/datastore.json"`
	BotStatus   string `env:"BOT_STATUS" envDefault:"Watching over the server"`

	LogPath  string `env:"LOG_PATH"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// InitSlashCommands controls slash-command registration on startup.
	InitSlashCommands bool `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
}

// New loads .env if present, then parses the environment into a Config.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
