// Package render substitutes placeholder tokens in the surviving template
// files and offers to persist the answers before doing so.
//
// Files are substituted concurrently. Files matching a skip-interpolation
// pattern, and files without any {{...}} token, are left byte-identical.
package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/aescanero/dago-scaffold/internal/console"
	"github.com/aescanero/dago-scaffold/internal/eval/template"
	"github.com/aescanero/dago-scaffold/internal/glob"
	"github.com/aescanero/dago-scaffold/internal/metadata"
	"github.com/aescanero/dago-scaffold/internal/persist"
	"github.com/aescanero/dago-scaffold/internal/prompt"
	"github.com/aescanero/dago-scaffold/internal/tree"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrSubstitution marks placeholder substitution failures
var ErrSubstitution = errors.New("substitution failed")

// SubstitutionError reports the file a substitution failed in
type SubstitutionError struct {
	Path string
	Err  error
}

func (e *SubstitutionError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Path, e.Err.Error())
}

func (e *SubstitutionError) Unwrap() error { return e.Err }

// Is matches ErrSubstitution
func (e *SubstitutionError) Is(target error) bool { return target == ErrSubstitution }

// Config configures a Renderer
type Config struct {
	Engine            *template.Engine
	SkipInterpolation []string
	Store             persist.Store
	Asker             prompt.Asker
	Console           *console.Console
	Logger            *zap.Logger

	// Concurrency bounds parallel substitutions; 0 means one task per file
	Concurrency int
}

// Renderer is the rendering stage of a generation run
type Renderer struct {
	engine      *template.Engine
	skip        []string
	store       persist.Store
	asker       prompt.Asker
	console     *console.Console
	logger      *zap.Logger
	concurrency int
}

// New creates a renderer
func New(cfg Config) *Renderer {
	if cfg.Engine == nil {
		cfg.Engine = template.NewEngine(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Console == nil {
		cfg.Console = console.New(nil)
	}
	return &Renderer{
		engine:      cfg.Engine,
		skip:        cfg.SkipInterpolation,
		store:       cfg.Store,
		asker:       cfg.Asker,
		console:     cfg.Console,
		logger:      cfg.Logger,
		concurrency: cfg.Concurrency,
	}
}

// Run offers to save data, then substitutes tokens in every eligible file.
// The first substitution error is returned; sibling substitutions already
// running are allowed to finish.
func (r *Renderer) Run(ctx context.Context, files tree.Files, data metadata.Context) error {
	if err := r.offerSave(ctx, data); err != nil {
		return err
	}

	noEscape := data.Bool(metadata.KeyNoEscape)
	scope := map[string]interface{}(data.Clone())

	var g errgroup.Group
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}

	for _, path := range files.Paths() {
		path, file := path, files[path]
		if r.skipped(path) {
			r.logger.Debug("skipping interpolation", zap.String("path", path))
			continue
		}

		g.Go(func() error {
			text := string(file.Contents)
			if !template.HasMustache(text) {
				return nil
			}

			out, err := r.engine.Render(text, scope, noEscape)
			if err != nil {
				return &SubstitutionError{Path: path, Err: err}
			}
			file.Contents = []byte(out)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Error("rendering failed", zap.Error(err))
		return err
	}
	return nil
}

// offerSave asks whether to persist data. Only a prompt failure is
// returned; a failed save is reported and the run continues.
func (r *Renderer) offerSave(ctx context.Context, data metadata.Context) error {
	if r.store == nil || r.asker == nil {
		return nil
	}

	r.console.Blank()
	save, err := prompt.Confirm(ctx, r.asker, "save", "Save the config?", false)
	if err != nil {
		return err
	}
	if !save {
		return nil
	}

	if err := r.store.Save(ctx, data); err != nil {
		r.logger.Warn("failed to save config", zap.Error(err))
		r.console.Warn("there was an error saving the config: " + err.Error())
		return nil
	}
	r.logger.Info("config saved")
	return nil
}

func (r *Renderer) skipped(path string) bool {
	return len(r.skip) > 0 && glob.Match(r.skip, path)
}
