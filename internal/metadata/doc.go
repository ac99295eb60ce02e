// Package metadata holds the key/value context that accumulates prompt
// answers and run-level flags during a generation run.
//
// Three keys are reserved and always reflect the current invocation:
//
//	destDirName  target project name
//	inPlace      true when the destination is the working directory
//	noEscape     disables HTML escaping during substitution
//
// Saved snapshots never override them:
//
//	data := metadata.Seed(reserved)
//	data.Restore(saved, reserved) // reserved keys re-applied after the load
package metadata
