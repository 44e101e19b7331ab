package service

import (
	"context"
	"strings"

	"reportapi/internal/model"
	"reportapi/internal/storage"
)

// SnapshotService answers lookups from exported column snapshots.
type SnapshotService interface {
	// Lookup returns the snapshot values of column containing value,
	// ignoring case. An empty value returns the whole snapshot.
	Lookup(ctx context.Context, column, value string) ([]string, error)
}

type snapshotService struct {
	store storage.SnapshotStore
}

// NewSnapshotService constructs a SnapshotService.
func NewSnapshotService(store storage.SnapshotStore) SnapshotService {
	return &snapshotService{store: store}
}

func (s *snapshotService) Lookup(ctx context.Context, column, value string) ([]string, error) {
	if !model.IsFilterColumn(column) {
		return nil, invalid("column", "unsupported column %q", column)
	}
	values, err := s.store.Load(ctx, column)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(value)
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			out = append(out, v)
		}
	}
	return out, nil
}
