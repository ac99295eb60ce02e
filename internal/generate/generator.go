package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aescanero/dago-scaffold/internal/console"
	"github.com/aescanero/dago-scaffold/internal/events"
	"github.com/aescanero/dago-scaffold/internal/metadata"
	"github.com/aescanero/dago-scaffold/internal/options"
	"github.com/aescanero/dago-scaffold/internal/persist"
	"github.com/aescanero/dago-scaffold/internal/prompt"
	"go.uber.org/zap"
)

// TemplateDir is the directory inside a template holding the project files
const TemplateDir = "template"

// ErrHook marks failures returned by template lifecycle hooks
var ErrHook = errors.New("hook failed")

// StoreFactory returns the save store of the template in dir
type StoreFactory func(dir string) persist.Store

// FileStores stores the save file as name inside the template directory
func FileStores(name string) StoreFactory {
	return func(dir string) persist.Store {
		return persist.NewFileStore(filepath.Join(dir, name))
	}
}

// Config configures a Generator
type Config struct {
	Asker     prompt.Asker
	Stores    StoreFactory
	Publisher events.Publisher
	Console   *console.Console
	Logger    *zap.Logger

	// Cwd decides the inPlace flag; defaults to the process working directory
	Cwd string

	NoEscape    bool
	Concurrency int

	// LoadOptions reads a template's options; defaults to options.Load
	LoadOptions func(name, dir string) (*options.Options, error)

	// Configure lets Go callers attach helpers and hooks after loading
	Configure func(opts *options.Options)
}

// Generator runs the generation pipeline
type Generator struct {
	asker       prompt.Asker
	stores      StoreFactory
	publisher   events.Publisher
	console     *console.Console
	logger      *zap.Logger
	cwd         string
	noEscape    bool
	concurrency int
	loadOptions func(name, dir string) (*options.Options, error)
	configure   func(opts *options.Options)
}

// New creates a new generator
func New(cfg Config) *Generator {
	g := &Generator{
		asker:       cfg.Asker,
		stores:      cfg.Stores,
		publisher:   cfg.Publisher,
		console:     cfg.Console,
		logger:      cfg.Logger,
		cwd:         cfg.Cwd,
		noEscape:    cfg.NoEscape,
		concurrency: cfg.Concurrency,
		loadOptions: cfg.LoadOptions,
		configure:   cfg.Configure,
	}

	if g.stores == nil {
		g.stores = FileStores(persist.DefaultFileName)
	}
	if g.publisher == nil {
		g.publisher = events.Nop{}
	}
	if g.console == nil {
		g.console = console.New(nil)
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	if g.loadOptions == nil {
		g.loadOptions = options.Load
	}
	if g.cwd == "" {
		if wd, err := os.Getwd(); err == nil {
			g.cwd = wd
		}
	}

	return g
}

// Generate materializes the template in src into dest for a project
// called name. The returned error is the run's only completion signal.
func (g *Generator) Generate(ctx context.Context, name, src, dest string) error {
	started := time.Now()
	g.logger.Info("starting generation",
		zap.String("name", name),
		zap.String("template", src),
		zap.String("destination", dest),
	)

	r, err := g.newRun(name, src, dest)
	if err == nil {
		err = r.execute(ctx)
	}

	event := events.Event{
		Type:        events.TypeGenerated,
		Template:    src,
		Destination: dest,
		Name:        name,
		Timestamp:   time.Now().UTC(),
	}
	if r != nil {
		event.Files = len(r.files)
		event.Reused = r.reused
	}
	if err != nil {
		event.Type = events.TypeFailed
		event.Error = err.Error()
	}
	if pubErr := g.publisher.Publish(ctx, event); pubErr != nil {
		g.logger.Warn("failed to publish generation event", zap.Error(pubErr))
	}

	if err != nil {
		g.logger.Error("generation failed",
			zap.String("name", name),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return err
	}

	g.logger.Info("generation complete",
		zap.String("name", name),
		zap.Int("files", event.Files),
		zap.Bool("reused_saved_config", event.Reused),
		zap.Duration("elapsed", time.Since(started)),
	)
	return nil
}

// reserved derives the reserved keys from the invocation
func (g *Generator) reserved(name, dest string) metadata.Reserved {
	return metadata.Reserved{
		DestDirName: name,
		InPlace:     samePath(dest, g.cwd),
		NoEscape:    g.noEscape,
	}
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return false
	}
	return absA == absB
}

func hookErr(stage string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrHook, stage, err)
}
