package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/particlefn/internal/config"
	"github.com/vk/particlefn/internal/ctxlog"
	"github.com/vk/particlefn/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	model    *config.Model
}

// NewApp is the constructor for the main application. Logs go to logW. It
// panics if the tree files cannot be loaded or the registry is inconsistent.
func NewApp(logW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.TreePath)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load node tree: %w", err))
	}
	logger.Debug("Node tree loaded and translated into unified model.")

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.NewWithModules(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "node_kinds", reg.Len())

	if err := reg.ValidateRegistry(ctx); err != nil {
		// This is a programmer error (a broken node definition), so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		logger:   logger,
		config:   appConfig,
		registry: reg,
		model:    model,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded tree model.
func (a *App) Model() *config.Model {
	return a.model
}
