package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reportapi/internal/model"
	"reportapi/internal/service"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) List(ctx context.Context, q service.ReportQuery) (*model.ReportPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportPage), args.Error(1)
}
