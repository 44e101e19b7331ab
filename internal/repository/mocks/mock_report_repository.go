package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reportapi/internal/repository"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) ScanPage(ctx context.Context, q repository.ScanQuery) (*repository.ScanResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ScanResult), args.Error(1)
}

func (m *MockReportRepository) SearchAll(ctx context.Context, term string, maxResults int) (*repository.SearchResult, error) {
	args := m.Called(ctx, term, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SearchResult), args.Error(1)
}
