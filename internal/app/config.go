package app

import (
	"errors"

	"github.com/vk/syclitgo/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SitePath string // HCL site description
	TestRoot string // overrides the site's test_root when non-empty
	Params   config.Params

	LogFormat string
	LogLevel  string

	OutPath   string // "-" writes the profile JSON to stdout
	ListTests bool
	Describe  bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.SitePath == "" {
		return nil, errors.New("SitePath is a required configuration field and cannot be empty")
	}
	if cfg.OutPath == "" {
		cfg.OutPath = "-"
	}
	return &cfg, nil
}
