package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/syclitgo/internal/composer"
	"github.com/vk/syclitgo/internal/config"
	"github.com/vk/syclitgo/internal/ctxlog"
	"github.com/vk/syclitgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. Profile output goes to outW; logs go to errW so the emitted
// JSON stays machine-readable.
type App struct {
	outW     io.Writer
	errW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	site     *config.Site
}

// coreFlows are the accelerator flows every instance knows about. Order
// matters: the Vitis flow decides the run prefix the AIE excludes must not
// disturb.
func coreFlows() []composer.Flow {
	return []composer.Flow{
		composer.NewVitisFlow(),
		composer.NewAieFlow(),
	}
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with the site description loaded and all flows
// registered.
func NewApp(outW, errW io.Writer, appConfig *Config, loader config.Loader, flows ...composer.Flow) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	site, err := loader.Load(ctx, appConfig.SitePath)
	if err != nil {
		// A failure to load the site description is a fatal startup error.
		panic(fmt.Errorf("failed to load site description: %w", err))
	}
	logger.Debug("Site description loaded into unified model.")

	reg := registry.New()
	if len(flows) == 0 {
		flows = coreFlows()
	}
	for _, flow := range flows {
		if err := reg.Register(flow); err != nil {
			// Duplicate registration is a programmer error.
			panic(err)
		}
	}
	logger.Debug("All accelerator flows registered.", "count", len(flows))

	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		registry: reg,
		site:     site,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Site returns the loaded site description. This is primarily for testing.
func (a *App) Site() *config.Site {
	return a.site
}
