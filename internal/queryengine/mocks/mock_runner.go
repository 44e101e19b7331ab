package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reportapi/internal/model"
	"reportapi/internal/queryengine"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, stmt queryengine.Statement) (model.ResultSet, error) {
	args := m.Called(ctx, stmt)
	return args.Get(0).(model.ResultSet), args.Error(1)
}
