package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Save(ctx context.Context, column string, values []string) error {
	args := m.Called(ctx, column, values)
	return args.Error(0)
}

func (m *MockSnapshotStore) Load(ctx context.Context, column string) ([]string, error) {
	args := m.Called(ctx, column)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
