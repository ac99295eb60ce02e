// Package persist stores the metadata context of a finished run so a later
// run of the same template can skip the questions.
//
// The default FileStore keeps a single JSON object beside the template
// (save.json). RedisStore keeps the same object under a Redis key for
// setups where the template directory is read-only or shared.
//
// Example usage:
//
//	store := persist.NewFileStore(filepath.Join(templateDir, "save.json"))
//	if ok, _ := store.Exists(ctx); ok {
//	    saved, err := store.Load(ctx)
//	    ...
//	}
//	err := store.Save(ctx, data) // overwrites any previous save
package persist
