// Package storage provides the persistence implementations behind the
// schedule.Store port: a JSON file (default), an in-memory store, and a
// sqlite database.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tufanunal/factory-planner-360-sub000/internal/schedule"
)

const (
	backupSuffix    = ".bak"
	tmpSuffix       = ".tmp"
	filePermissions = 0o644
)

// FileStore persists the snapshot as one pretty-printed JSON file. Saves are
// atomic: the snapshot is written to a temp file and renamed over the old
// one, with the previous file kept as a .bak backup.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a file store at the given path.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load reads the snapshot file. A missing file is not an error: it returns
// nil so the caller can seed an initial snapshot.
func (fs *FileStore) Load(ctx context.Context) (*schedule.Snapshot, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snap schedule.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}

	fs.logger.Info("Snapshot loaded",
		zap.String("file", fs.path),
		zap.Int("calendars", len(snap.Calendars)),
		zap.Int("shift_times", len(snap.ShiftTimes)))

	return &snap, nil
}

// Save writes the snapshot. Either the new file is fully in place afterwards
// or the previous one still is; a half-written temp file is never visible
// under the real path.
func (fs *FileStore) Save(ctx context.Context, snap *schedule.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmpFile := fs.path + tmpSuffix
	if err := os.WriteFile(tmpFile, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	// Keep the previous snapshot as a backup.
	if _, err := os.Stat(fs.path); err == nil {
		if err := os.Rename(fs.path, fs.path+backupSuffix); err != nil {
			fs.logger.Warn("Failed to create snapshot backup", zap.Error(err))
		}
	}

	if err := os.Rename(tmpFile, fs.path); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	fs.logger.Debug("Snapshot saved",
		zap.String("file", fs.path),
		zap.Int("bytes", len(data)))
	return nil
}
