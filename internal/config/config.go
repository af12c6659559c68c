package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		// BaseDir overrides the directory layout root; empty means
		// "two levels up from the binary".
		BaseDir string `envconfig:"CFDI_BASE_DIR" default:""`
		Verbose bool   `envconfig:"CFDI_VERBOSE" default:"false"`
	}

	Server struct {
		Address      string        `envconfig:"CFDI_SERVER_ADDRESS" default:":8080"`
		ReadTimeout  time.Duration `envconfig:"CFDI_SERVER_READ_TIMEOUT" default:"30s"`
		WriteTimeout time.Duration `envconfig:"CFDI_SERVER_WRITE_TIMEOUT" default:"60s"`
		Debug        bool          `envconfig:"CFDI_SERVER_DEBUG" default:"false"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
