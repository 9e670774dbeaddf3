package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Carnet"`
		Port int    `envconfig:"PORT" default:"5000"`
		Env  string `envconfig:"APP_ENV" default:"development"`
	}

	DB struct {
		URI  string `envconfig:"DATABASE_URL" default:"mongodb://localhost:27017"`
		Name string `envconfig:"DB_NAME" default:"carnet"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Static struct {
		// Dir holds the prebuilt front end served in production mode.
		Dir string `envconfig:"STATIC_DIR" default:"dist"`
	}
}

// Production reports whether the server should serve the prebuilt front end.
func (c *Config) Production() bool {
	return c.App.Env == "production"
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
