// Package generate drives a generation run: it turns a template directory
// plus the user's answers into a project tree.
//
// A run moves through these states:
//
//	start ──saved config?──▶ ask-reuse ──yes──▶ restore-saved ─┐
//	  │                          │no                            │
//	  └──────────────────────────┴────▶ ask-fresh ──────────────┤
//	                                                            ▼
//	        complete ◀── write ◀── hooks ◀── render ◀──────── filter
//
// The template's Before hook runs once before start. Any failure except a
// failed config save ends the run before anything is written.
//
// Example usage:
//
//	g := generate.New(generate.Config{
//	    Asker:  prompt.NewTerminal(os.Stdin, os.Stdout),
//	    Logger: logger,
//	})
//	if err := g.Generate(ctx, "my-app", "templates/webpack", "./my-app"); err != nil {
//	    log.Fatal(err)
//	}
//
// The template directory holds the option file (meta.json / meta.yaml),
// the save file and a template/ directory whose content becomes the project.
package generate
