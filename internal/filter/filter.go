// Package filter removes template files whose governing rule excludes them
// for the current answers.
//
// A rule pairs a glob pattern with a condition. A file matched by a pattern
// whose condition does not hold is removed; exclusion is sticky, so a file
// removed by one rule cannot be kept by another. Files no pattern matches
// are always kept.
package filter

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aescanero/dago-scaffold/internal/eval/cel"
	"github.com/aescanero/dago-scaffold/internal/glob"
	"github.com/aescanero/dago-scaffold/internal/metadata"
	"github.com/aescanero/dago-scaffold/internal/tree"
	"go.uber.org/zap"
)

// ErrFilter marks rule evaluation failures
var ErrFilter = errors.New("filter failed")

// Rule governs the files matching Pattern. A nil Condition never holds.
type Rule struct {
	Pattern   string
	Condition cel.Condition
}

// Filter applies rules to a file map
type Filter struct {
	rules  []Rule
	logger *zap.Logger
}

// New creates a filter over rules
func New(rules []Rule, logger *zap.Logger) *Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filter{rules: rules, logger: logger}
}

// Apply removes excluded entries from files and returns their sorted paths.
// Every condition is evaluated once, before anything is removed.
func (f *Filter) Apply(ctx context.Context, files tree.Files, data metadata.Context) ([]string, error) {
	if len(f.rules) == 0 {
		return nil, nil
	}

	excluded := make(map[string]bool)
	for i, rule := range f.rules {
		f.logger.Debug("evaluating filter rule",
			zap.Int("rule_index", i),
			zap.String("pattern", rule.Pattern),
		)

		holds, err := f.holds(ctx, rule, data)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %q: %w", ErrFilter, rule.Pattern, err)
		}
		if holds {
			continue
		}

		for path := range files {
			if glob.MatchPattern(rule.Pattern, path) {
				excluded[path] = true
			}
		}
	}

	removed := make([]string, 0, len(excluded))
	for path := range excluded {
		delete(files, path)
		removed = append(removed, path)
	}
	sort.Strings(removed)

	if len(removed) > 0 {
		f.logger.Info("filtered template files",
			zap.Int("removed", len(removed)),
			zap.Strings("paths", removed),
		)
	}
	return removed, nil
}

func (f *Filter) holds(ctx context.Context, rule Rule, data metadata.Context) (bool, error) {
	if rule.Condition == nil {
		return false, nil
	}
	return rule.Condition.Holds(ctx, data)
}
