package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/ports"
)

// Ext is the extension the consumer application imports.
const Ext = ".lorebook"

// Store implements ports.LorebookStore using the local filesystem.
// It stores each lorebook as <BasePath>/<name>.lorebook.
type Store struct {
	BasePath string
}

// NewStore creates a new Store with the given base path.
// If basePath is empty, it defaults to the current directory.
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = "."
	}
	return &Store{BasePath: basePath}
}

// Path returns where name is stored.
func (s *Store) Path(name string) string {
	return filepath.Join(s.BasePath, name+Ext)
}

func checkName(name string) error {
	if name == "" {
		return errors.New("lorebook name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid lorebook name %q", name)
	}
	return nil
}

// Write persists data atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure output directory: %w", err)
	}

	destPath := s.Path(name)

	// Same directory, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+name+"-*"+Ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows cannot rename over an existing file.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing lorebook for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", destPath, err)
	}
	return nil
}

// Read returns the stored bytes.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("lorebook %q: %w", name, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read lorebook file: %w", err)
	}
	return data, nil
}

// List returns the stored lorebook names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list lorebooks: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != Ext || strings.HasPrefix(name, "tmp-") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, Ext))
	}
	sort.Strings(names)
	return names, nil
}
