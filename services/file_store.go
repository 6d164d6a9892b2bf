package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const scenarioFileSuffix = ".scenario.json"

// FileStore keeps one JSON file per scenario under a base directory.
type FileStore struct {
	basePath string
	mu       sync.RWMutex
}

func NewFileStore(basePath string) (*FileStore, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		slog.Error("Failed to resolve absolute path", "path", basePath, "error", err)
		return nil, fmt.Errorf("could not resolve scenarios path '%s': %w", basePath, err)
	}
	if err := ensureDir(absPath); err != nil {
		return nil, fmt.Errorf("could not create scenarios directory '%s': %w", absPath, err)
	}
	return &FileStore{basePath: absPath}, nil
}

func (fs *FileStore) pathFor(id string) string {
	return filepath.Join(fs.basePath, id+scenarioFileSuffix)
}

func (fs *FileStore) Get(ctx context.Context, id string) (*ScenarioRecord, error) {
	if err := ValidateID(id); err != nil {
		return nil, ErrNoSuchEntity
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.read(fs.pathFor(id))
}

func (fs *FileStore) read(path string) (*ScenarioRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSuchEntity
		}
		slog.Error("Failed to read scenario", "path", path, "error", err)
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	var rec ScenarioRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Error("Failed to unmarshal scenario", "path", path, "error", err)
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	return &rec, nil
}

func (fs *FileStore) Save(ctx context.Context, rec *ScenarioRecord) error {
	if err := ValidateID(rec.Id); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize scenario %s: %w", rec.Id, err)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	// Write then rename so a reader never sees a half written file.
	path := fs.pathFor(rec.Id)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		slog.Error("Failed to write scenario file", "id", rec.Id, "path", tmp, "error", err)
		return fmt.Errorf("failed to save scenario %s: %w", rec.Id, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to save scenario %s: %w", rec.Id, err)
	}
	return nil
}

func (fs *FileStore) List(ctx context.Context) ([]*ScenarioRecord, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	entries, err := os.ReadDir(fs.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	out := []*ScenarioRecord{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), scenarioFileSuffix) {
			continue
		}
		rec, err := fs.read(filepath.Join(fs.basePath, entry.Name()))
		if err != nil {
			slog.Warn("Skipping unreadable scenario", "file", entry.Name(), "error", err)
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

func (fs *FileStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return ErrNoSuchEntity
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	err := os.Remove(fs.pathFor(id))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNoSuchEntity
	}
	return err
}

func (fs *FileStore) Close() error { return nil }

func ensureDir(path string) error {
	err := os.MkdirAll(path, 0755)
	if err != nil && !errors.Is(err, os.ErrExist) {
		slog.Error("Failed to create directory", "path", path, "error", err)
		return err
	}
	return nil
}
