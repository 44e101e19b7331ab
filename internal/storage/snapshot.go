package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// ErrSnapshotNotFound is returned by Load when no snapshot was exported for a column.
var ErrSnapshotNotFound = errors.New("snapshot not found")

var snapshotName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// SnapshotStore persists the distinct values of one lake column so lookups
// can be served without a query round trip.
type SnapshotStore interface {
	Save(ctx context.Context, column string, values []string) error
	Load(ctx context.Context, column string) ([]string, error)
}

// fileSnapshots keeps one JSON array per column in dir.
type fileSnapshots struct {
	dir string
}

// NewFileSnapshots returns a SnapshotStore writing athena_data_<column>.json
// files under dir, creating it if needed.
func NewFileSnapshots(dir string) (SnapshotStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("snapshot dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &fileSnapshots{dir: dir}, nil
}

func (s *fileSnapshots) path(column string) (string, error) {
	if !snapshotName.MatchString(column) {
		return "", fmt.Errorf("invalid snapshot column %q", column)
	}
	return filepath.Join(s.dir, "athena_data_"+column+".json"), nil
}

// Save replaces the snapshot for column. The file is written next to its
// final name and renamed so readers never see a partial array.
func (s *fileSnapshots) Save(_ context.Context, column string, values []string) error {
	p, err := s.path(column)
	if err != nil {
		return err
	}
	if values == nil {
		values = []string{}
	}
	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".athena_data_*.tmp")
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot for column.
func (s *fileSnapshots) Load(_ context.Context, column string) ([]string, error) {
	p, err := s.path(column)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, column)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var values []string
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", column, err)
	}
	return values, nil
}
