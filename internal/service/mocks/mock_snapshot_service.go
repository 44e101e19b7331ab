package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSnapshotService struct {
	mock.Mock
}

func (m *MockSnapshotService) Lookup(ctx context.Context, column, value string) ([]string, error) {
	args := m.Called(ctx, column, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
