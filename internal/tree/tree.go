// Package tree reads a directory into an in-memory file map and writes such
// a map back out under a destination directory.
//
// Paths are slash-separated and relative to the read root. Writing never
// removes pre-existing destination content.
package tree

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// ErrWrite marks destination materialization failures
var ErrWrite = errors.New("write failed")

// SkipDirs are directory names never read into the map
var SkipDirs = []string{".git", ".svn", ".hg"}

// File is one entry of the file map
type File struct {
	Contents []byte
	Mode     fs.FileMode
}

// Files maps relative paths to entries
type Files map[string]*File

// Paths returns the relative paths in sorted order
func (f Files) Paths() []string {
	paths := make([]string, 0, len(f))
	for p := range f {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Clone returns a copy with independent content buffers
func (f Files) Clone() Files {
	out := make(Files, len(f))
	for p, file := range f {
		out[p] = &File{Contents: append([]byte(nil), file.Contents...), Mode: file.Mode}
	}
	return out
}

// Read loads every regular file under root, dot-files included
func Read(root string) (Files, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read template root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template root %s is not a directory", root)
	}

	files := make(Files)
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if p != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		contents, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}

		files[filepath.ToSlash(rel)] = &File{Contents: contents, Mode: fi.Mode().Perm()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Write materializes files under dest, creating directories as needed and
// overwriting existing files. Nothing else in dest is touched.
func Write(ctx context.Context, dest string, files Files) error {
	for _, rel := range files.Paths() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}

		clean := path.Clean(rel)
		if clean == ".." || path.IsAbs(clean) || len(clean) > 2 && clean[:3] == "../" {
			return fmt.Errorf("%w: %s escapes the destination", ErrWrite, rel)
		}

		file := files[rel]
		target := filepath.Join(dest, filepath.FromSlash(clean))

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("%w: cannot create directory for %s: %w", ErrWrite, rel, err)
		}

		mode := file.Mode
		if mode == 0 {
			mode = 0644
		}
		if err := os.WriteFile(target, file.Contents, mode); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, rel, err)
		}
	}
	return nil
}

func skipDir(name string) bool {
	for _, s := range SkipDirs {
		if s == name {
			return true
		}
	}
	return false
}
