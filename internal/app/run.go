package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/vk/syclitgo/internal/composer"
	"github.com/vk/syclitgo/internal/ctxlog"
	"github.com/vk/syclitgo/internal/fsutil"
)

// Run executes one compose pass and emits the resulting profile.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	ambient := environMap(os.Environ())
	comp := composer.New(runtime.GOOS, a.registry.Flows()...)

	profile, err := comp.Compose(ctx, a.site, appConfig.Params, ambient)
	if err != nil {
		return fmt.Errorf("test configuration failed: %w", err)
	}

	if appConfig.Describe {
		a.describe(profile)
	}

	if appConfig.ListTests {
		root := appConfig.TestRoot
		if root == "" {
			root = a.site.TestRoot
		}
		tests, err := fsutil.FindTests(root, profile.Suffixes, profile.Excludes)
		if err != nil {
			return fmt.Errorf("test discovery failed: %w", err)
		}
		a.logger.Info("Discovered tests.", "root", root, "count", len(tests))
		for _, test := range tests {
			fmt.Fprintln(a.outW, test)
		}
		a.logger.Debug("App.Run method finished.")
		return nil
	}

	if err := a.emit(profile, appConfig.OutPath); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// emit writes the profile JSON to the configured destination.
func (a *App) emit(profile *composer.Profile, outPath string) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	data = append(data, '\n')

	if outPath == "-" {
		_, err := a.outW.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	a.logger.Info("Profile written.", "path", outPath)
	return nil
}

// environMap converts "KEY=value" pairs into a snapshot map. Later
// duplicates win, matching how the OS resolves them.
func environMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, pair := range environ {
		if name, value, ok := strings.Cut(pair, "="); ok {
			out[name] = value
		}
	}
	return out
}
