package options

import (
	"fmt"

	"github.com/go-git/go-git/v5/config"
)

// GitAuthor returns "name <email>" from the global git config, or "" when
// nothing is configured
var GitAuthor = func() string {
	cfg, err := config.LoadConfig(config.GlobalScope)
	if err != nil {
		return ""
	}
	name, email := cfg.User.Name, cfg.User.Email
	switch {
	case name == "":
		return ""
	case email == "":
		return name
	default:
		return fmt.Sprintf("%s <%s>", name, email)
	}
}

// applyDefaults fills defaults that depend on the invocation: the name
// prompt defaults to the destination name and the author prompt to the
// git identity
func applyDefaults(opts *Options, name string) {
	if p, ok := opts.Prompt("name"); ok && p.Default == nil {
		p.Default = name
	}
	if p, ok := opts.Prompt("author"); ok && p.Default == nil {
		if author := GitAuthor(); author != "" {
			p.Default = author
		}
	}
}
