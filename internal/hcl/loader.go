// Package hcl implements config.Loader for HCL site files.
package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/syclitgo/internal/config"
	"github.com/vk/syclitgo/internal/ctxlog"
	"github.com/vk/syclitgo/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL site loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the site file at path and translates it into the agnostic
// model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Site, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading site file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse site file %s: %w", path, diags)
	}

	var parsed schema.SiteFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode site file %s: %w", path, diags)
	}

	site, err := translateSite(&parsed)
	if err != nil {
		return nil, fmt.Errorf("invalid site file %s: %w", path, err)
	}

	logger.Debug("Site file loaded.", "test_root", site.TestRoot)
	return site, nil
}
