package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/chembatch/internal/config"
	"github.com/vk/chembatch/internal/ctxlog"
	"github.com/vk/chembatch/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	model    *config.Model
	table    *registry.Table
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry.
// Construction is where every fatal failure class surfaces: a config
// that cannot be loaded and an engine name that does not resolve both
// abort here, before any engine-tied record is allocated.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded into unified model.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All engine backends registered.", "count", len(modules), "names", reg.Names())

	table, st := reg.Resolve(model.Engine)
	if st.Failed() {
		panic(st.Err())
	}
	logger.Debug("Chemistry engine resolved.", "engine", model.Engine)

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		model:    model,
		table:    table,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded configuration model. Primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
