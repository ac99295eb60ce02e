package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aescanero/dago-scaffold/internal/metadata"
)

// DefaultFileName is the save file name inside the template directory
const DefaultFileName = "save.json"

// ErrNotFound is returned by Load when nothing has been saved
var ErrNotFound = errors.New("no saved config")

// Store persists one metadata snapshot per template
type Store interface {
	Exists(ctx context.Context) (bool, error)
	Load(ctx context.Context) (map[string]interface{}, error)
	Save(ctx context.Context, data metadata.Context) error
	Delete(ctx context.Context) error
}

// FileStore keeps the snapshot as a JSON file
type FileStore struct {
	Path string
}

// NewFileStore creates a file store at path
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Exists reports whether the save file is present
func (s *FileStore) Exists(ctx context.Context) (bool, error) {
	_, err := os.Stat(s.Path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat save file: %w", err)
}

// Load decodes the save file
func (s *FileStore) Load(ctx context.Context) (map[string]interface{}, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}
	return decode(raw)
}

// Save replaces the save file with data
func (s *FileStore) Save(ctx context.Context, data metadata.Context) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove previous save: %w", err)
	}
	if err := os.WriteFile(s.Path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	return nil
}

// Delete removes the save file
func (s *FileStore) Delete(ctx context.Context) error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete save file: %w", err)
	}
	return nil
}

func decode(raw []byte) (map[string]interface{}, error) {
	var saved map[string]interface{}
	if err := json.Unmarshal(raw, &saved); err != nil {
		return nil, fmt.Errorf("failed to unmarshal saved config: %w", err)
	}
	if saved == nil {
		return nil, fmt.Errorf("saved config is not a JSON object")
	}
	return saved, nil
}
