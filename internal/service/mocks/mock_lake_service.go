package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reportapi/internal/model"
)

type MockLakeService struct {
	mock.Mock
}

func (m *MockLakeService) Paginate(ctx context.Context, req model.PaginationRequest) (*model.PaginatedRecords, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaginatedRecords), args.Error(1)
}

func (m *MockLakeService) RawQuery(ctx context.Context, sql string) ([]model.Row, error) {
	args := m.Called(ctx, sql)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Row), args.Error(1)
}

func (m *MockLakeService) ColumnMatches(ctx context.Context, column, value string) ([]model.Record, error) {
	args := m.Called(ctx, column, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Record), args.Error(1)
}

func (m *MockLakeService) ExportColumn(ctx context.Context, column string) (int, error) {
	args := m.Called(ctx, column)
	return args.Int(0), args.Error(1)
}
