package generate

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aescanero/dago-scaffold/internal/eval/template"
	"github.com/aescanero/dago-scaffold/internal/filter"
	"github.com/aescanero/dago-scaffold/internal/metadata"
	"github.com/aescanero/dago-scaffold/internal/options"
	"github.com/aescanero/dago-scaffold/internal/persist"
	"github.com/aescanero/dago-scaffold/internal/prompt"
	"github.com/aescanero/dago-scaffold/internal/render"
	"github.com/aescanero/dago-scaffold/internal/tree"
	"go.uber.org/zap"
)

type state string

const (
	stateStart        state = "start"
	stateAskReuse     state = "ask-reuse"
	stateRestoreSaved state = "restore-saved"
	stateAskFresh     state = "ask-fresh"
	stateFilter       state = "filter"
	stateRender       state = "render"
	stateHooks        state = "hooks"
	stateWrite        state = "write"
	stateComplete     state = "complete"
	stateDone         state = "done"
)

// run is the state of one Generate call
type run struct {
	g        *Generator
	name     string
	src      string
	dest     string
	opts     *options.Options
	files    tree.Files
	data     metadata.Context
	reserved metadata.Reserved
	store    persist.Store
	engine   *template.Engine
	helpers  options.Helpers
	reused   bool
}

func (g *Generator) newRun(name, src, dest string) (*run, error) {
	opts, err := g.loadOptions(name, src)
	if err != nil {
		return nil, fmt.Errorf("failed to load template options: %w", err)
	}
	if g.configure != nil {
		g.configure(opts)
	}

	files, err := tree.Read(filepath.Join(src, TemplateDir))
	if err != nil {
		return nil, err
	}

	reserved := g.reserved(name, dest)
	return &run{
		g:        g,
		name:     name,
		src:      src,
		dest:     dest,
		opts:     opts,
		files:    files,
		data:     metadata.Seed(reserved),
		reserved: reserved,
		store:    g.stores(src),
		helpers:  options.Helpers{Logger: g.logger, Console: g.console},
	}, nil
}

// execute runs the pre hook then walks the state machine to done
func (r *run) execute(ctx context.Context) error {
	if r.opts.Before != nil {
		if err := r.opts.Before(r.files, r.data, r.opts, r.helpers); err != nil {
			return hookErr("before", err)
		}
	}

	// helpers registered by the before hook are part of the scope
	r.engine = template.NewEngine(r.opts.Helpers)

	for st := stateStart; st != stateDone; {
		started := time.Now()
		next, err := r.step(ctx, st)
		if err != nil {
			return err
		}
		r.g.logger.Debug("stage finished",
			zap.String("stage", string(st)),
			zap.String("next", string(next)),
			zap.Duration("elapsed", time.Since(started)),
		)
		st = next
	}
	return nil
}

func (r *run) step(ctx context.Context, st state) (state, error) {
	switch st {
	case stateStart:
		return r.start(ctx), nil
	case stateAskReuse:
		return r.askReuse(ctx)
	case stateRestoreSaved:
		return r.restoreSaved(ctx), nil
	case stateAskFresh:
		return stateFilter, r.askFresh(ctx)
	case stateFilter:
		return stateRender, r.filter(ctx)
	case stateRender:
		return stateHooks, r.render(ctx)
	case stateHooks:
		return stateWrite, r.hooks()
	case stateWrite:
		return stateComplete, tree.Write(ctx, r.dest, r.files)
	case stateComplete:
		r.complete()
		return stateDone, nil
	default:
		return stateDone, fmt.Errorf("unknown generation state: %s", st)
	}
}

func (r *run) start(ctx context.Context) state {
	exists, err := r.store.Exists(ctx)
	if err != nil {
		r.g.logger.Warn("failed to check for saved config", zap.Error(err))
		return stateAskFresh
	}
	if exists {
		return stateAskReuse
	}
	return stateAskFresh
}

func (r *run) askReuse(ctx context.Context) (state, error) {
	reuse, err := prompt.Confirm(ctx, r.g.asker, "useSave", "Use a saved config?", false)
	if err != nil {
		return stateDone, err
	}
	if reuse {
		return stateRestoreSaved, nil
	}
	return stateAskFresh, nil
}

// restoreSaved loads the snapshot; an unreadable snapshot falls back to
// asking the questions
func (r *run) restoreSaved(ctx context.Context) state {
	saved, err := r.store.Load(ctx)
	if err != nil {
		r.g.logger.Warn("failed to load saved config", zap.Error(err))
		r.g.console.Warn("the saved config could not be read, asking again")
		return stateAskFresh
	}

	r.data.Restore(saved, r.reserved)
	r.reused = true
	r.g.logger.Info("using saved config", zap.Int("keys", len(saved)))
	return stateFilter
}

func (r *run) askFresh(ctx context.Context) error {
	return prompt.NewEngine(r.g.asker, r.g.logger).Run(ctx, r.opts.Prompts, r.data)
}

func (r *run) filter(ctx context.Context) error {
	_, err := filter.New(r.opts.Filters, r.g.logger).Apply(ctx, r.files, r.data)
	return err
}

func (r *run) render(ctx context.Context) error {
	return render.New(render.Config{
		Engine:            r.engine,
		SkipInterpolation: r.opts.SkipInterpolation,
		Store:             r.store,
		Asker:             r.g.asker,
		Console:           r.g.console,
		Logger:            r.g.logger,
		Concurrency:       r.g.concurrency,
	}).Run(ctx, r.files, r.data)
}

func (r *run) hooks() error {
	hook := r.opts.PostHook()
	if hook == nil {
		return nil
	}
	stage := "after"
	if r.opts.Hook != nil {
		stage = "hook"
	}
	if err := hook(r.files, r.data, r.opts, r.helpers); err != nil {
		return hookErr(stage, err)
	}
	return nil
}

// complete reports success through the template's handler or message.
// A message that fails to render is reported, not returned.
func (r *run) complete() {
	if r.opts.Complete != nil {
		r.opts.Complete(r.data, options.CompleteHelpers{
			Logger:  r.g.logger,
			Console: r.g.console,
			Files:   r.files,
		})
		return
	}

	if r.opts.CompleteMessage == "" {
		return
	}
	msg, err := r.engine.Render(r.opts.CompleteMessage, map[string]interface{}(r.data), r.data.Bool(metadata.KeyNoEscape))
	if err != nil {
		r.g.logger.Warn("failed to render complete message", zap.Error(err))
		r.g.console.Error("Error when rendering template complete message: " + err.Error())
		return
	}
	r.g.console.Indented(msg)
}
