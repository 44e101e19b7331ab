package queryengine_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"reportapi/internal/model"
	"reportapi/internal/queryengine"
	"reportapi/internal/queryengine/mocks"
)

var testOptions = queryengine.Options{
	Database:            "lake",
	OutputLocation:      "s3://results/",
	PollInitialInterval: time.Millisecond,
	PollMaxInterval:     2 * time.Millisecond,
	PollMaxWait:         200 * time.Millisecond,
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func statusOut(state types.QueryExecutionState, reason *string) *athena.GetQueryExecutionOutput {
	return &athena.GetQueryExecutionOutput{
		QueryExecution: &types.QueryExecution{
			Status: &types.QueryExecutionStatus{State: state, StateChangeReason: reason},
		},
	}
}

func resultsOut(cols []string, next *string, rows ...[]*string) *athena.GetQueryResultsOutput {
	rs := &types.ResultSet{ResultSetMetadata: &types.ResultSetMetadata{}}
	for _, c := range cols {
		rs.ResultSetMetadata.ColumnInfo = append(rs.ResultSetMetadata.ColumnInfo, types.ColumnInfo{Name: aws.String(c)})
	}
	for _, r := range rows {
		row := types.Row{}
		for _, cell := range r {
			row.Data = append(row.Data, types.Datum{VarCharValue: cell})
		}
		rs.Rows = append(rs.Rows, row)
	}
	return &athena.GetQueryResultsOutput{ResultSet: rs, NextToken: next}
}

func cells(values ...string) []*string {
	out := make([]*string, len(values))
	for i := range values {
		out[i] = aws.String(values[i])
	}
	return out
}

func forID(id string) interface{} {
	return mock.MatchedBy(func(in *athena.GetQueryExecutionInput) bool {
		return aws.ToString(in.QueryExecutionId) == id
	})
}

func TestClient_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("sends statement and context", func(t *testing.T) {
		api := new(mocks.MockAPI)
		api.On("StartQueryExecution", ctx, mock.MatchedBy(func(in *athena.StartQueryExecutionInput) bool {
			return aws.ToString(in.QueryString) == "SELECT ? AS v" &&
				aws.ToString(in.QueryExecutionContext.Database) == "lake" &&
				aws.ToString(in.ResultConfiguration.OutputLocation) == "s3://results/" &&
				in.WorkGroup == nil &&
				assert.ObjectsAreEqual([]string{"'x'"}, in.ExecutionParameters)
		})).Return(&athena.StartQueryExecutionOutput{QueryExecutionId: aws.String("q-1")}, nil).Once()

		c := queryengine.NewClient(api, testOptions, nil, quietLogger())
		id, err := c.Submit(ctx, queryengine.Statement{SQL: "SELECT ? AS v", Params: []string{"'x'"}})

		require.NoError(t, err)
		assert.Equal(t, "q-1", id)
		api.AssertExpectations(t)
	})

	t.Run("no parameters leaves ExecutionParameters unset", func(t *testing.T) {
		api := new(mocks.MockAPI)
		api.On("StartQueryExecution", ctx, mock.MatchedBy(func(in *athena.StartQueryExecutionInput) bool {
			return in.ExecutionParameters == nil
		})).Return(&athena.StartQueryExecutionOutput{QueryExecutionId: aws.String("q-2")}, nil).Once()

		c := queryengine.NewClient(api, testOptions, nil, quietLogger())
		_, err := c.Submit(ctx, queryengine.Statement{SQL: "SELECT 1"})
		require.NoError(t, err)
		api.AssertExpectations(t)
	})

	t.Run("missing execution id", func(t *testing.T) {
		api := new(mocks.MockAPI)
		api.On("StartQueryExecution", ctx, mock.Anything).Return(&athena.StartQueryExecutionOutput{}, nil).Once()

		c := queryengine.NewClient(api, testOptions, nil, quietLogger())
		_, err := c.Submit(ctx, queryengine.Statement{SQL: "SELECT 1"})
		assert.ErrorIs(t, err, queryengine.ErrNoExecutionID)
	})

	t.Run("engine error", func(t *testing.T) {
		api := new(mocks.MockAPI)
		api.On("StartQueryExecution", ctx, mock.Anything).Return(nil, errors.New("throttled")).Once()

		c := queryengine.NewClient(api, testOptions, nil, quietLogger())
		_, err := c.Submit(ctx, queryengine.Statement{SQL: "SELECT 1"})
		assert.EqualError(t, err, "start query execution: throttled")
	})
}

func TestClient_Wait(t *testing.T) {
	ctx := context.Background()

	t.Run("polls through intermediate states", func(t *testing.T) {
		api := new(mocks.MockAPI)
		api.On("GetQueryExecution", ctx, forID("q-1")).Return(statusOut(types.QueryExecutionStateQueued, nil), nil).Once()
		api.On("GetQueryExecution", ctx, forID("q-1")).Return(statusOut(types.QueryExecutionStateRunning, nil), nil).Once()
		api.On("GetQueryExecution", ctx, forID("q-1")).Return(statusOut(types.QueryExecutionStateSucceeded, nil), nil).Once()

		metrics, err := queryengine.NewMetrics(prometheus.NewRegistry())
		require.NoError(t, err)
		c := queryengine.NewClient(api, testOptions, metrics, quietLogger())

		exec, err := c.Wait(ctx, "q-1")
		require.NoError(t, err)
		assert.Equal(t, model.QuerySucceeded, exec.State)
		assert.Equal(t, float64(3), testutil.ToFloat64(queryengine.MetricsPolls(metrics)))
		assert.Equal(t, float64(1), testutil.ToFloat64(queryengine.MetricsExecutions(metrics).WithLabelValues("SUCCEEDED")))
		api.AssertExpectations(t)
	})

	t.Run("unknown states keep polling", func(t *testing.T) {
		api := new(mocks.MockAPI)
		api.On("GetQueryExecution", ctx, forID("q-1")).Return(statusOut(types.QueryExecutionState("PENDING_CAPACITY"), nil), nil).Once()
		api.On("GetQueryExecution", ctx, forID("q-1")).Return(statusOut(types.QueryExecutionStateSucceeded, nil), nil).Once()

		c := queryengine.NewClient(api, testOptions, nil, quietLogger())
		exec, err := c.Wait(ctx, "q-1")
		require.NoError(t, err)
		assert.Equal(t, model.QuerySucceeded, exec.State)
		api.AssertExpectations(t)
	})

	t.Run("failed carries the engine reason", func(t *testing.T) {
		api := new(mocks.MockAPI)
		api.On("GetQueryExecution", ctx, forID("q-1")).Return(statusOut(types.QueryExecutionStateRunning, nil), nil).Once()
		api.On("GetQueryExecution", ctx, forID("q-1")).
			Return(statusOut(types.QueryExecutionStateFailed, aws.String("SYNTAX_ERROR: line 1:8")), nil).Once()

		c := queryengine.NewClient(api, testOptions, nil, quietLogger())
		_, err := c.Wait(ctx, "q-1")

		require.Error(t, err)
		assert.ErrorIs(t, err, queryengine.ErrQueryFailed)
		var qf *queryengine.QueryFailedError
		require.ErrorAs(t, err, &qf)
		assert.Equal(t, model.QueryFailed, qf.State)
		assert.Equal(t, "SYNTAX_ERROR: line 1:8", qf.Reason)
		assert.Contains(t, err.Error(), "SYNTAX_ERROR")
		api.AssertExpectations(t)
	})

	t.Run("cancelled", func(t *testing.T) {
		api := new(mocks.MockAPI)
		api.On("GetQueryExecution", ctx, forID("q-1")).Return(statusOut(types.QueryExecutionStateCancelled, nil), nil).Once()

		c := queryengine.NewClient(api, testOptions, nil, quietLogger())
		_, err := c.Wait(ctx, "q-1")

		assert.ErrorIs(t, err, queryengine.ErrQueryFailed)
		assert.EqualError(t, err, "query q-1: CANCELLED")
	})

	t.Run("times out when never terminal", func(t *testing.T) {
		api := new(mocks.MockAPI)
		api.On("GetQueryExecution", ctx, forID("q-1")).Return(statusOut(types.QueryExecutionStateRunning, nil), nil)

		opts := testOptions
		opts.PollMaxWait = 20 * time.Millisecond
		c := queryengine.NewClient(api, opts, nil, quietLogger())

		exec, err := c.Wait(ctx, "q-1")
		assert.ErrorIs(t, err, queryengine.ErrQueryTimeout)
		assert.NotErrorIs(t, err, queryengine.ErrQueryFailed)
		assert.Equal(t, model.QueryRunning, exec.State)
	})

	t.Run("poll error is not retried", func(t *testing.T) {
		api := new(mocks.MockAPI)
		api.On("GetQueryExecution", ctx, forID("q-1")).Return(nil, errors.New("access denied")).Once()

		c := queryengine.NewClient(api, testOptions, nil, quietLogger())
		_, err := c.Wait(ctx, "q-1")

		assert.EqualError(t, err, "get query execution q-1: access denied")
		api.AssertExpectations(t)
	})
}

// Run wraps ctx in a span, so expectations match any context.
func TestClient_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("select one end to end", func(t *testing.T) {
		api := new(mocks.MockAPI)
		api.On("StartQueryExecution", mock.Anything, mock.Anything).
			Return(&athena.StartQueryExecutionOutput{QueryExecutionId: aws.String("q-1")}, nil).Once()
		api.On("GetQueryExecution", mock.Anything, forID("q-1")).Return(statusOut(types.QueryExecutionStateQueued, nil), nil).Once()
		api.On("GetQueryExecution", mock.Anything, forID("q-1")).Return(statusOut(types.QueryExecutionStateRunning, nil), nil).Once()
		api.On("GetQueryExecution", mock.Anything, forID("q-1")).Return(statusOut(types.QueryExecutionStateSucceeded, nil), nil).Once()
		api.On("GetQueryResults", mock.Anything, mock.MatchedBy(func(in *athena.GetQueryResultsInput) bool {
			return aws.ToString(in.QueryExecutionId) == "q-1" && in.NextToken == nil
		})).Return(resultsOut([]string{"_col0"}, nil, cells("_col0"), cells("1")), nil).Once()

		c := queryengine.NewClient(api, testOptions, nil, quietLogger())
		rs, err := c.Run(ctx, queryengine.Statement{SQL: "SELECT 1"})

		require.NoError(t, err)
		require.Len(t, rs.Rows, 1)
		assert.Equal(t, "1", *rs.Rows[0][0])
		assert.Equal(t, []string{"_col0"}, rs.Columns)
		api.AssertExpectations(t)
	})

	t.Run("failure skips result fetch", func(t *testing.T) {
		api := new(mocks.MockAPI)
		api.On("StartQueryExecution", mock.Anything, mock.Anything).
			Return(&athena.StartQueryExecutionOutput{QueryExecutionId: aws.String("q-2")}, nil).Once()
		api.On("GetQueryExecution", mock.Anything, forID("q-2")).
			Return(statusOut(types.QueryExecutionStateFailed, aws.String("Table not found")), nil).Once()

		c := queryengine.NewClient(api, testOptions, nil, quietLogger())
		_, err := c.Run(ctx, queryengine.Statement{SQL: "SELECT * FROM missing"})

		assert.ErrorIs(t, err, queryengine.ErrQueryFailed)
		api.AssertNotCalled(t, "GetQueryResults", mock.Anything, mock.Anything)
	})
}

func TestClient_Run_Span(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	api := new(mocks.MockAPI)
	api.On("StartQueryExecution", mock.Anything, mock.Anything).
		Return(&athena.StartQueryExecutionOutput{QueryExecutionId: aws.String("q-9")}, nil).Once()
	api.On("GetQueryExecution", mock.Anything, forID("q-9")).
		Return(statusOut(types.QueryExecutionStateCancelled, nil), nil).Once()

	c := queryengine.NewClient(api, testOptions, nil, quietLogger())
	_, err := c.Run(context.Background(), queryengine.Statement{SQL: "SELECT 1"})
	require.ErrorIs(t, err, queryengine.ErrQueryFailed)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "athena.run", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("athena.query_execution_id", "q-9"))
}

func TestClient_FetchPage_NullCells(t *testing.T) {
	ctx := context.Background()
	api := new(mocks.MockAPI)
	api.On("GetQueryResults", ctx, mock.Anything).
		Return(resultsOut([]string{"a", "b"}, aws.String("tok"), []*string{aws.String(""), nil}), nil).Once()

	c := queryengine.NewClient(api, testOptions, nil, quietLogger())
	page, err := c.FetchPage(ctx, "q-1", nil)

	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	require.NotNil(t, page.Rows[0][0])
	assert.Equal(t, "", *page.Rows[0][0])
	assert.Nil(t, page.Rows[0][1])
	assert.Equal(t, "tok", aws.ToString(page.NextToken))
}
