// Package queryengine runs SQL against Amazon Athena: it submits statements,
// waits for them to finish and reads their paginated results.
package queryengine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"reportapi/internal/model"
)

// API is the subset of the Athena client used here. *athena.Client satisfies it.
type API interface {
	StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error)
	GetQueryResults(ctx context.Context, params *athena.GetQueryResultsInput, optFns ...func(*athena.Options)) (*athena.GetQueryResultsOutput, error)
}

var _ API = (*athena.Client)(nil)

// Statement is SQL text with positional ("?") execution parameters.
// Params must already be rendered literals, see QuoteLiteral.
type Statement struct {
	SQL    string
	Params []string
}

// Options configures where queries run and how long Wait may block.
type Options struct {
	Database       string
	OutputLocation string
	Workgroup      string

	PollInitialInterval time.Duration
	PollMaxInterval     time.Duration
	PollMaxWait         time.Duration
}

// Client drives query executions. It is built once at start-up and shared
// between requests; it holds no per-query state.
type Client struct {
	api     API
	opts    Options
	metrics *Metrics
	logger  *slog.Logger
}

// NewClient creates a Client. metrics may be nil.
func NewClient(api API, opts Options, metrics *Metrics, logger *slog.Logger) *Client {
	if opts.PollInitialInterval <= 0 {
		opts.PollInitialInterval = time.Second
	}
	if opts.PollMaxInterval < opts.PollInitialInterval {
		opts.PollMaxInterval = opts.PollInitialInterval
	}
	if opts.PollMaxWait <= 0 {
		opts.PollMaxWait = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{api: api, opts: opts, metrics: metrics, logger: logger}
}

// Submit starts an execution and returns its id.
func (c *Client) Submit(ctx context.Context, stmt Statement) (string, error) {
	in := &athena.StartQueryExecutionInput{
		QueryString: aws.String(stmt.SQL),
	}
	if c.opts.Database != "" {
		in.QueryExecutionContext = &types.QueryExecutionContext{Database: aws.String(c.opts.Database)}
	}
	if c.opts.OutputLocation != "" {
		in.ResultConfiguration = &types.ResultConfiguration{OutputLocation: aws.String(c.opts.OutputLocation)}
	}
	if c.opts.Workgroup != "" {
		in.WorkGroup = aws.String(c.opts.Workgroup)
	}
	if len(stmt.Params) > 0 {
		in.ExecutionParameters = stmt.Params
	}

	out, err := c.api.StartQueryExecution(ctx, in)
	if err != nil {
		return "", fmt.Errorf("start query execution: %w", err)
	}
	id := aws.ToString(out.QueryExecutionId)
	if id == "" {
		return "", ErrNoExecutionID
	}
	c.logger.DebugContext(ctx, "query_submitted", "execution_id", id)
	return id, nil
}

// Poll reads the current state of an execution.
func (c *Client) Poll(ctx context.Context, id string) (model.QueryExecution, error) {
	out, err := c.api.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{
		QueryExecutionId: aws.String(id),
	})
	if err != nil {
		return model.QueryExecution{}, fmt.Errorf("get query execution %s: %w", id, err)
	}
	exec := model.QueryExecution{ID: id}
	if out.QueryExecution != nil && out.QueryExecution.Status != nil {
		exec.State = model.QueryState(out.QueryExecution.Status.State)
		exec.FailureReason = out.QueryExecution.Status.StateChangeReason
	}
	return exec, nil
}

var errStillRunning = errors.New("query still running")

// Wait polls until the execution reaches a terminal state. Polls back off
// exponentially with jitter; once PollMaxWait has elapsed without a terminal
// state Wait returns ErrQueryTimeout. FAILED and CANCELLED executions are
// returned as *QueryFailedError.
func (c *Client) Wait(ctx context.Context, id string) (model.QueryExecution, error) {
	started := time.Now()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.opts.PollInitialInterval
	bo.MaxInterval = c.opts.PollMaxInterval
	bo.Multiplier = 1.5
	bo.RandomizationFactor = 0.2

	var last model.QueryExecution
	exec, err := backoff.Retry(ctx, func() (model.QueryExecution, error) {
		c.metrics.observePoll()
		e, err := c.Poll(ctx, id)
		if err != nil {
			return e, backoff.Permanent(err)
		}
		last = e
		switch e.State {
		case model.QuerySucceeded:
			return e, nil
		case model.QueryFailed, model.QueryCancelled:
			return e, backoff.Permanent(&QueryFailedError{
				ExecutionID: id,
				State:       e.State,
				Reason:      aws.ToString(e.FailureReason),
			})
		default:
			return e, errStillRunning
		}
	},
		backoff.WithBackOff(bo),
		backoff.WithMaxElapsedTime(c.opts.PollMaxWait),
	)

	switch {
	case err == nil:
		c.metrics.observeDone(string(exec.State), started)
		c.logger.DebugContext(ctx, "query_succeeded", "execution_id", id, "wait_ms", time.Since(started).Milliseconds())
		return exec, nil
	case errors.Is(err, errStillRunning):
		c.metrics.observeDone(stateLabel(last, true), started)
		c.logger.WarnContext(ctx, "query_timeout", "execution_id", id, "state", string(last.State), "max_wait", c.opts.PollMaxWait.String())
		return last, fmt.Errorf("%w: execution %s still %s after %s", ErrQueryTimeout, id, last.State, c.opts.PollMaxWait)
	default:
		c.metrics.observeDone(stateLabel(last, false), started)
		c.logger.WarnContext(ctx, "query_failed", "execution_id", id, "error", err.Error())
		return last, err
	}
}

// FetchPage reads one page of results. token is nil for the first page.
func (c *Client) FetchPage(ctx context.Context, id string, token *string) (model.ResultPage, error) {
	out, err := c.api.GetQueryResults(ctx, &athena.GetQueryResultsInput{
		QueryExecutionId: aws.String(id),
		NextToken:        token,
	})
	if err != nil {
		return model.ResultPage{}, fmt.Errorf("get query results %s: %w", id, err)
	}

	page := model.ResultPage{NextToken: out.NextToken}
	if out.ResultSet == nil {
		return page, nil
	}
	if md := out.ResultSet.ResultSetMetadata; md != nil {
		for _, ci := range md.ColumnInfo {
			page.Columns = append(page.Columns, aws.ToString(ci.Name))
		}
	}
	page.Rows = make([]model.Row, 0, len(out.ResultSet.Rows))
	for _, r := range out.ResultSet.Rows {
		row := make(model.Row, len(r.Data))
		for i, d := range r.Data {
			row[i] = d.VarCharValue
		}
		page.Rows = append(page.Rows, row)
	}
	return page, nil
}

const tracerName = "reportapi/internal/queryengine"

// Run submits stmt, waits for it and returns every result row, header removed.
// The whole execution is traced as one client span.
func (c *Client) Run(ctx context.Context, stmt Statement) (_ model.ResultSet, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "athena.run",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "athena"),
			attribute.String("db.name", c.opts.Database),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	id, err := c.Submit(ctx, stmt)
	if err != nil {
		return model.ResultSet{}, err
	}
	span.SetAttributes(attribute.String("athena.query_execution_id", id))
	if _, err := c.Wait(ctx, id); err != nil {
		return model.ResultSet{}, err
	}
	return FetchAll(ctx, c, id)
}
