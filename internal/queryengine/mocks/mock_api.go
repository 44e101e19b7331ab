package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/stretchr/testify/mock"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, _ ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*athena.StartQueryExecutionOutput), args.Error(1)
}

func (m *MockAPI) GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, _ ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*athena.GetQueryExecutionOutput), args.Error(1)
}

func (m *MockAPI) GetQueryResults(ctx context.Context, params *athena.GetQueryResultsInput, _ ...func(*athena.Options)) (*athena.GetQueryResultsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*athena.GetQueryResultsOutput), args.Error(1)
}
