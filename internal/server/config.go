package server

import (
	"time"

	"github.com/caarlos0/env/v11"
	appenv "github.com/garrettladley/moodly/internal/env"
)

type Config struct {
	Port       string             `env:"PORT" envDefault:"8080"`
	Env        appenv.Environment `env:"ENV" envDefault:"development"`
	SessionTTL time.Duration      `env:"SESSION_TTL" envDefault:"168h"`

	Database Database

	Redis Redis `envPrefix:"REDIS_"`
	// RateLimit applies per client IP on the auth routes and per user elsewhere.
	RateLimit RateLimit `envPrefix:"RATE_"`
	CORS      CORS      `envPrefix:"CORS_"`
	Gemini    Gemini    `envPrefix:"GEMINI_"`
	Spotify   Spotify   `envPrefix:"SPOTIFY_"`
}

type Database struct {
	// URL selects Postgres. SQLite at Path is used when empty.
	URL  string `env:"DATABASE_URL"`
	Path string `env:"DB_PATH" envDefault:"moodly.db"`
}

type Redis struct {
	// URL is optional; an in-memory backend is used without it.
	URL string `env:"URL"`
}

type RateLimit struct {
	Limit float64 `env:"LIMIT" envDefault:"5"`
	Burst int     `env:"BURST" envDefault:"10"`
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
}

type Gemini struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gemini-2.0-flash"`
}

type Spotify struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

func (s Spotify) Enabled() bool { return s.ClientID != "" && s.ClientSecret != "" }

func ReadConfig() (Config, error) {
	return env.ParseAs[Config]()
}
