// Package config provides configuration management for the scaffold CLI.
//
// Configuration is loaded from SCAFFOLD_-prefixed environment variables and
// validated on startup. All options have defaults suitable for interactive
// use on a workstation.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config
