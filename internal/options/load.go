package options

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aescanero/dago-scaffold/internal/eval/cel"
	"github.com/aescanero/dago-scaffold/internal/filter"
	"github.com/aescanero/dago-scaffold/internal/glob"
	"github.com/aescanero/dago-scaffold/internal/metadata"
	"github.com/aescanero/dago-scaffold/internal/prompt"
	"gopkg.in/yaml.v3"
)

// MetaFiles are the option file names looked up, in order
var MetaFiles = []string{"meta.json", "meta.yaml", "meta.yml"}

type rawPrompt struct {
	Type              string      `yaml:"type"`
	Message           string      `yaml:"message"`
	Label             string      `yaml:"label"`
	Default           interface{} `yaml:"default"`
	Choices           []yaml.Node `yaml:"choices"`
	Required          bool        `yaml:"required"`
	DefaultWhenHidden bool        `yaml:"defaultWhenHidden"`
}

type rawMeta struct {
	Prompts           yaml.Node `yaml:"prompts"`
	Filters           yaml.Node `yaml:"filters"`
	SkipInterpolation yaml.Node `yaml:"skipInterpolation"`
	CompleteMessage   string    `yaml:"completeMessage"`
}

// Load reads the options of the template in dir. A template without a
// meta file has no prompts and no filters.
func Load(name, dir string) (*Options, error) {
	raw, source, err := readMeta(dir)
	if err != nil {
		return nil, err
	}

	opts := &Options{Name: name}

	if err := decodePrompts(&raw.Prompts, opts); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	names := append([]string(nil), metadata.ReservedKeys...)
	for _, p := range opts.Prompts {
		names = append(names, p.Name)
	}
	opts.Evaluator, err = cel.NewEvaluator(names)
	if err != nil {
		return nil, err
	}

	// conditions need the evaluator, so resolve them in a second pass
	if err := bindWhen(&raw.Prompts, opts); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if opts.Filters, err = decodeFilters(&raw.Filters, opts.Evaluator); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if opts.SkipInterpolation, err = stringOrList(&raw.SkipInterpolation); err != nil {
		return nil, fmt.Errorf("%s: skipInterpolation: %w", source, err)
	}
	if !glob.Valid(opts.SkipInterpolation...) {
		return nil, fmt.Errorf("%s: skipInterpolation: invalid pattern", source)
	}
	opts.CompleteMessage = raw.CompleteMessage

	applyDefaults(opts, name)
	return opts, nil
}

func readMeta(dir string) (rawMeta, string, error) {
	var raw rawMeta
	for _, candidate := range MetaFiles {
		path := filepath.Join(dir, candidate)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return raw, path, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return raw, path, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return raw, path, nil
	}
	return raw, "", nil
}

// decodePrompts accepts an ordered mapping name -> prompt, or a sequence
// of prompts carrying a name field
func decodePrompts(node *yaml.Node, opts *Options) error {
	for _, entry := range promptEntries(node) {
		var rp rawPrompt
		if err := entry.value.Decode(&rp); err != nil {
			return fmt.Errorf("prompt %s: %w", entry.name, err)
		}
		choices, err := decodeChoices(rp.Choices)
		if err != nil {
			return fmt.Errorf("prompt %s: %w", entry.name, err)
		}
		opts.Prompts = append(opts.Prompts, prompt.Spec{
			Name:              entry.name,
			Type:              prompt.Type(rp.Type),
			Message:           rp.Message,
			Label:             rp.Label,
			Default:           rp.Default,
			Choices:           choices,
			Required:          rp.Required,
			DefaultWhenHidden: rp.DefaultWhenHidden,
		})
	}
	return nil
}

func bindWhen(node *yaml.Node, opts *Options) error {
	for i, entry := range promptEntries(node) {
		var rp struct {
			When yaml.Node `yaml:"when"`
		}
		if err := entry.value.Decode(&rp); err != nil {
			return err
		}
		if rp.When.Kind == 0 {
			continue
		}
		cond, err := condition(&rp.When, opts.Evaluator)
		if err != nil {
			return fmt.Errorf("prompt %s: when: %w", entry.name, err)
		}
		opts.Prompts[i].When = cond
	}
	return nil
}

type namedNode struct {
	name  string
	value *yaml.Node
}

func promptEntries(node *yaml.Node) []namedNode {
	var entries []namedNode
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			entries = append(entries, namedNode{name: node.Content[i].Value, value: node.Content[i+1]})
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			var named struct {
				Name string `yaml:"name"`
			}
			if err := item.Decode(&named); err == nil && named.Name != "" {
				entries = append(entries, namedNode{name: named.Name, value: item})
			}
		}
	}
	return entries
}

func decodeChoices(nodes []yaml.Node) ([]prompt.Choice, error) {
	choices := make([]prompt.Choice, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		if n.Kind == yaml.ScalarNode {
			choices = append(choices, prompt.Choice{Name: n.Value, Value: n.Value})
			continue
		}
		var c prompt.Choice
		if err := n.Decode(&c); err != nil {
			return nil, fmt.Errorf("choice %d: %w", i, err)
		}
		if c.Value == "" {
			c.Value = c.Name
		}
		choices = append(choices, c)
	}
	return choices, nil
}

// decodeFilters accepts a mapping glob -> condition
func decodeFilters(node *yaml.Node, ev *cel.Evaluator) ([]filter.Rule, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("filters must be a mapping of glob to condition")
	}

	rules := make([]filter.Rule, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		pattern := node.Content[i].Value
		if !glob.Valid(pattern) {
			return nil, fmt.Errorf("filter %q: invalid pattern", pattern)
		}
		cond, err := condition(node.Content[i+1], ev)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", pattern, err)
		}
		rules = append(rules, filter.Rule{Pattern: pattern, Condition: cond})
	}
	return rules, nil
}

// condition maps a YAML scalar to a Condition: booleans are constants,
// null is nil and strings are CEL expressions
func condition(node *yaml.Node, ev *cel.Evaluator) (cel.Condition, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("condition must be a boolean or an expression")
	}
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		if b {
			return cel.Always, nil
		}
		return cel.Never, nil
	}
	if err := ev.ValidateExpression(node.Value); err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", node.Value, err)
	}
	return ev.Condition(node.Value), nil
}

func stringOrList(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return nil, nil
		}
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, fmt.Errorf("expected a string or a list of strings")
	}
}
