package config

import "context"

// Loader is the interface for a format-specific site-file loader.
type Loader interface {
	// Load reads a site description from the given path and translates it
	// into the format-agnostic model.
	Load(ctx context.Context, path string) (*Site, error)
}
