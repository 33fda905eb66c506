package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/logging"
	"github.com/dennissergeev/exo-lightning-msci-project/internal/presentation/tui"
	"github.com/dennissergeev/exo-lightning-msci-project/internal/settings"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/file"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/memory"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/process"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/redis"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/sqlite"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/ports"
)

// ErrRunsFailed is returned when a command completed but at least one run failed.
var ErrRunsFailed = errors.New("one or more runs failed")

// App holds what every command needs.
type App struct {
	Settings settings.Settings
	Logger   *slog.Logger
	Out      io.Writer
	Render   tui.Renderer

	// Integrator, when set, replaces the process integrator described by
	// Settings.IntegratorConfig.
	Integrator ports.Integrator

	// Store, when set, replaces the backend selected by Settings.Store.
	Store ports.ResultStore
}

// NewApp creates an App writing logs to errOut and reports to out.
func NewApp(s settings.Settings, out, errOut io.Writer) (*App, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	render := tui.Plain
	if f, ok := out.(*os.File); ok {
		render = tui.NewRenderer(f)
	}
	return &App{
		Settings: s,
		Logger:   logging.NewWithWriter(errOut, level),
		Out:      out,
		Render:   render,
	}, nil
}

// OpenStore returns the configured result store and a function releasing it.
func (a *App) OpenStore(ctx context.Context) (ports.ResultStore, func() error, error) {
	noop := func() error { return nil }
	if a.Store != nil {
		return a.Store, noop, nil
	}

	s := a.Settings
	switch s.Store {
	case settings.StoreFile:
		return file.New(s.OutputDir, file.WithPrefix(s.OutputPrefix)), noop, nil
	case settings.StoreMemory:
		return memory.NewStore(), noop, nil
	case settings.StoreRedis:
		store, err := redis.NewFromURL(s.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", domain.ErrArtifactIO, err)
		}
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("%w: redis unreachable: %w", domain.ErrArtifactIO, err)
		}
		return store, store.Close, nil
	case settings.StoreSQLite:
		path := s.SQLiteFile()
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", domain.ErrArtifactIO, err)
		}
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", domain.ErrArtifactIO, err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", s.Store)
	}
}

// LoadIntegrator returns the integrator used by run.
func (a *App) LoadIntegrator() (ports.Integrator, error) {
	if a.Integrator != nil {
		return a.Integrator, nil
	}
	cfg, err := process.LoadConfig(a.Settings.IntegratorConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfigLoad, err)
	}
	a.Logger.Debug("integrator configured", "command", cfg.Command, "args", cfg.Args, "dir", cfg.Dir)
	return process.New(cfg), nil
}

func (a *App) print(markdown string) error {
	out, err := a.Render(markdown)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.Out, out)
	return err
}
