// Package runtime provides application runtime context for CareBell.
package runtime

import (
	"context"
	"log/slog"

	"github.com/carebell/carebell/internal/config"
	"github.com/carebell/carebell/internal/logging"
	"github.com/carebell/carebell/internal/output"
	"github.com/carebell/carebell/internal/storage"
)

// Context holds the application runtime context.
type Context struct {
	Config    *config.Config
	Store     storage.Store
	Formatter *output.Formatter

	// Repositories
	ScheduleRepo *storage.ScheduleRepo
	EventRepo    *storage.EventRepo
	DoneRepo     *storage.DoneRepo
	SettingsRepo *storage.SettingsRepo
	ProfileRepo  *storage.ProfileRepo

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	ConfigPath string
	InMemory   bool
	Format     output.Format
	ColorMode  output.ColorMode
	Debug      bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New creates a new runtime context. It loads the configuration, wires the
// logger, opens the configured store backend, and builds the repositories.
func New(opts Options) (*Context, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	initLogging(cfg, opts.Debug)

	store, err := openStore(cfg, opts.InMemory)
	if err != nil {
		return nil, err
	}

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		Config:       cfg,
		Store:        store,
		Formatter:    formatter,
		ScheduleRepo: storage.NewScheduleRepo(store),
		EventRepo:    storage.NewEventRepo(store),
		DoneRepo:     storage.NewDoneRepo(store),
		SettingsRepo: storage.NewSettingsRepo(store),
		ProfileRepo:  storage.NewProfileRepo(store),
		Debug:        opts.Debug,
	}, nil
}

// openStore opens the backend named by the storage configuration. The
// path ":memory:" forces an in-memory store regardless of backend, so
// CAREBELL_STORAGE_PATH=:memory: works the same way everywhere.
func openStore(cfg *config.Config, inMemory bool) (storage.Store, error) {
	if inMemory || cfg.Storage.Path == ":memory:" {
		return storage.Open(storage.Options{InMemory: true})
	}

	switch cfg.Storage.Backend {
	case config.BackendRedis:
		return storage.OpenRedis(context.Background(), storage.RedisOptions{
			Address:  cfg.Storage.Redis.Address,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
	default:
		path := cfg.Storage.Path
		if path == "" {
			path = storage.DefaultPath()
		}
		return storage.Open(storage.Options{Path: path})
	}
}

func initLogging(cfg *config.Config, debug bool) {
	if debug {
		logging.InitDebug()
		return
	}

	level := slog.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logging.Init(logging.Config{
		Level: level,
		JSON:  cfg.App.LogJSON,
	})
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}
