package config

import (
	"github.com/caarlos0/env/v11"
)

const DefaultServerURL = "http://localhost:8080"

// Config is the terminal client's configuration.
type Config struct {
	ServerURL string `env:"SERVER_URL" envDefault:"http://localhost:8080"`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}
