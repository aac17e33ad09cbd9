package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/jpsloader/internal/config"
	"github.com/vk/jpsloader/internal/ctxlog"
	"github.com/vk/jpsloader/internal/events"
	"github.com/vk/jpsloader/internal/loader"
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/registry"
	"github.com/vk/jpsloader/internal/workerpool"
	"github.com/vk/jpsloader/internal/xmldoc"
	"github.com/vk/jpsloader/plugins"
	"golang.org/x/sync/errgroup"
)

// App encapsulates the loader and everything it shares between loads.
type App struct {
	logger    *slog.Logger
	config    *config.Config
	registry  *registry.Registry
	pool      *workerpool.Pool
	docs      *xmldoc.Loader
	loader    *loader.Loader
	publisher *events.SocketIOPublisher
}

// NewApp builds an App. When no extensions are passed, the bundled ones named
// by cfg.Extensions are installed (all of them when the list is empty).
// Conflicting registrations panic.
func NewApp(logW io.Writer, cfg *config.Config, exts ...registry.Extension) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(exts) == 0 {
		var err error
		exts, err = plugins.Resolve(cfg.Extensions)
		if err != nil {
			return nil, err
		}
	}

	reg := registry.New()
	reg.Install(exts...)
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extension set: %w", err)
	}
	logger.Debug("Extensions installed.", "extensions", reg.Extensions(), "module_types", reg.ModuleTypes())

	docs, err := xmldoc.NewLoader(cfg.DocumentCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create document loader: %w", err)
	}

	a := &App{
		logger:   logger,
		config:   cfg,
		registry: reg,
		docs:     docs,
	}

	listener := loader.ProgressListener(events.LogListener{})
	if cfg.EventsURL != "" {
		pub, err := events.DialSocketIO(ctx, events.SocketIOOptions{URL: cfg.EventsURL})
		if err != nil {
			logger.Warn("Progress events disabled, could not connect.", "events_url", cfg.EventsURL, "error", err)
		} else {
			a.publisher = pub
			listener = events.Multi{listener, pub}
		}
	}

	a.pool = workerpool.New(ctx, cfg.Workers)
	logger.Debug("Worker pool started.", "workers", a.pool.Size())

	a.loader = loader.New(reg, a.pool, docs,
		loader.WithListener(listener),
		loader.WithTimeout(cfg.LoadTimeout),
		loader.WithPathVariables(pathVariables(cfg.PathVariables)),
	)
	return a, nil
}

// pathVariables returns vars plus USER_HOME when it is not set explicitly.
func pathVariables(vars map[string]string) map[string]string {
	out := make(map[string]string, len(vars)+1)
	for k, v := range vars {
		out[k] = v
	}
	if _, ok := out["USER_HOME"]; !ok {
		if home, err := os.UserHomeDir(); err == nil {
			out["USER_HOME"] = home
		}
	}
	return out
}

// Registry returns the frozen extension registry.
func (a *App) Registry() *registry.Registry { return a.registry }

// Workers is the size of the shared pool.
func (a *App) Workers() int { return a.pool.Size() }

// LoadProject loads one project.
func (a *App) LoadProject(ctx context.Context, path string) (*model.Project, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	return a.loader.LoadProject(ctx, path, pathVariables(a.config.PathVariables))
}

// LoadModule loads a single descriptor outside of any project.
func (a *App) LoadModule(ctx context.Context, path string) (*model.Module, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	return a.loader.LoadModule(ctx, path, "")
}

// LoadProjects loads every path concurrently on the shared pool. The result
// has one entry per path, nil for those that failed; the error joins every
// failure.
func (a *App) LoadProjects(ctx context.Context, paths []string) ([]*model.Project, error) {
	projects := make([]*model.Project, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			projects[i], errs[i] = a.LoadProject(ctx, path)
			return nil
		})
	}
	_ = g.Wait()
	return projects, errors.Join(errs...)
}

// Close stops the pool and disconnects the event publisher.
func (a *App) Close() {
	a.logger.Debug("Shutting down.")
	a.pool.Close()
	if a.publisher != nil {
		a.publisher.Close()
	}
}
