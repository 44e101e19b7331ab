package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"reportapi/internal/model"
	"reportapi/internal/queryengine"
	"reportapi/internal/storage"
)

const (
	defaultMaxPageSize = 100
	columnMatchLimit   = 5
	// maxRowNumber is the highest row number a page may reach.
	maxRowNumber = math.MaxInt32
)

// QueryRunner runs one statement to completion. *queryengine.Client satisfies it.
type QueryRunner interface {
	Run(ctx context.Context, stmt queryengine.Statement) (model.ResultSet, error)
}

var _ QueryRunner = (*queryengine.Client)(nil)

// LakeOptions configures LakeService.
type LakeOptions struct {
	Table       string
	OrderBy     string
	MaxPageSize int
}

// LakeService exposes the query engine to the HTTP layer.
type LakeService interface {
	// Paginate returns one page of the lake table and its pagination envelope.
	Paginate(ctx context.Context, req model.PaginationRequest) (*model.PaginatedRecords, error)

	// RawQuery runs sql as given and returns its rows without the header.
	RawQuery(ctx context.Context, sql string) ([]model.Row, error)

	// ColumnMatches returns a few values of column that contain value.
	ColumnMatches(ctx context.Context, column, value string) ([]model.Record, error)

	// ExportColumn stores every distinct value of column as a snapshot and
	// returns how many were written.
	ExportColumn(ctx context.Context, column string) (int, error)
}

type lakeService struct {
	runner    QueryRunner
	snapshots storage.SnapshotStore
	table     string
	order     queryengine.Ordering
	maxLimit  int
}

// NewLakeService validates the table name and ordering once so that no
// request can influence them.
func NewLakeService(runner QueryRunner, snapshots storage.SnapshotStore, opts LakeOptions) (LakeService, error) {
	table, err := queryengine.QuoteTable(opts.Table)
	if err != nil {
		return nil, err
	}
	order := queryengine.OrderByDocumentID
	if opts.OrderBy != "" {
		if order, err = queryengine.ParseOrdering(opts.OrderBy); err != nil {
			return nil, err
		}
	}
	maxLimit := opts.MaxPageSize
	if maxLimit <= 0 {
		maxLimit = defaultMaxPageSize
	}
	return &lakeService{runner: runner, snapshots: snapshots, table: table, order: order, maxLimit: maxLimit}, nil
}

func (s *lakeService) validate(req model.PaginationRequest) error {
	if req.Page < 1 {
		return invalid("page", "must be a positive integer")
	}
	if req.Limit < 1 || req.Limit > s.maxLimit {
		return invalid("limit", "must be between 1 and %d", s.maxLimit)
	}
	// The last row of the page, page*limit, must stay a valid row number.
	if maxPage := maxRowNumber / req.Limit; req.Page > maxPage {
		return invalid("page", "must not exceed %d for limit %d", maxPage, req.Limit)
	}
	if req.FilterColumn != "" && !model.IsFilterColumn(req.FilterColumn) {
		return invalid("filter_column", "unsupported column %q", req.FilterColumn)
	}
	return nil
}

// Paginate runs the window and count queries concurrently. Either failing
// fails the call; when both fail both errors are reported.
func (s *lakeService) Paginate(ctx context.Context, req model.PaginationRequest) (*model.PaginatedRecords, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	start := (req.Page-1)*req.Limit + 1
	end := start + req.Limit - 1
	filter := queryengine.Filter{Status: req.Status}
	if req.FilterColumn != "" {
		filter.Column = req.FilterColumn
		filter.Value = req.FilterValue
	}

	// The first failure cancels the sibling query.
	g, gctx := errgroup.WithContext(ctx)
	var (
		rows      model.ResultSet
		total     int
		windowErr error
		countErr  error
	)
	g.Go(func() error {
		rows, windowErr = s.runner.Run(gctx, queryengine.WindowQuery(s.table, s.order, filter, start, end))
		return windowErr
	})
	g.Go(func() error {
		var rs model.ResultSet
		if rs, countErr = s.runner.Run(gctx, queryengine.CountQuery(s.table, filter)); countErr == nil {
			total, countErr = parseCount(rs)
		}
		return countErr
	})
	if g.Wait() != nil {
		return nil, combine(windowErr, countErr)
	}

	return &model.PaginatedRecords{
		Data:       rows.Records(queryengine.RowNumberColumn),
		Pagination: newEnvelope(req.Page, req.Limit, total),
	}, nil
}

// combine returns the single failure as is, or both wrapped in one error.
// A query cancelled because its sibling failed is not a failure of its own.
func combine(windowErr, countErr error) error {
	if windowErr == nil {
		return countErr
	}
	if countErr == nil {
		return windowErr
	}
	windowCancelled := errors.Is(windowErr, context.Canceled)
	countCancelled := errors.Is(countErr, context.Canceled)
	switch {
	case countCancelled && !windowCancelled:
		return windowErr
	case windowCancelled && !countCancelled:
		return countErr
	}
	merr := multierror.Append(nil,
		fmt.Errorf("window query: %w", windowErr),
		fmt.Errorf("count query: %w", countErr))
	merr.ErrorFormat = func(errs []error) string {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return strings.Join(msgs, "; ")
	}
	return merr
}

func parseCount(rs model.ResultSet) (int, error) {
	if len(rs.Rows) == 0 || len(rs.Rows[0]) == 0 || rs.Rows[0][0] == nil {
		return 0, ErrInvalidCount
	}
	raw := strings.TrimSpace(*rs.Rows[0][0])
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCount, raw)
	}
	return n, nil
}

func newEnvelope(page, limit, total int) model.PaginationEnvelope {
	totalPages := (total + limit - 1) / limit
	from := (page-1)*limit + 1
	env := model.PaginationEnvelope{
		CurrentPage: page,
		PerPage:     limit,
		Total:       total,
		TotalPages:  totalPages,
		From:        from,
		To:          min(from+limit-1, total),
	}
	if page > 1 {
		prev := page - 1
		env.PreviousPage = &prev
	}
	if page < totalPages {
		next := page + 1
		env.NextPage = &next
	}
	return env
}

func (s *lakeService) RawQuery(ctx context.Context, sql string) ([]model.Row, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, &ValidationError{Field: "query", Message: "Query is required"}
	}
	rs, err := s.runner.Run(ctx, queryengine.Statement{SQL: sql})
	if err != nil {
		return nil, err
	}
	return rs.Rows, nil
}

func (s *lakeService) checkColumn(column string) error {
	if column == "" {
		return invalid("column", "is required")
	}
	if !model.IsFilterColumn(column) {
		return invalid("column", "unsupported column %q", column)
	}
	return nil
}

func (s *lakeService) ColumnMatches(ctx context.Context, column, value string) ([]model.Record, error) {
	if err := s.checkColumn(column); err != nil {
		return nil, err
	}
	rs, err := s.runner.Run(ctx, queryengine.ColumnMatchQuery(s.table, column, value, columnMatchLimit))
	if err != nil {
		return nil, err
	}
	return rs.Records(), nil
}

func (s *lakeService) ExportColumn(ctx context.Context, column string) (int, error) {
	if err := s.checkColumn(column); err != nil {
		return 0, err
	}
	rs, err := s.runner.Run(ctx, queryengine.DistinctColumnQuery(s.table, column))
	if err != nil {
		return 0, err
	}
	values := make([]string, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		if len(row) > 0 && row[0] != nil {
			values = append(values, *row[0])
		}
	}
	if err := s.snapshots.Save(ctx, column, values); err != nil {
		return 0, fmt.Errorf("save snapshot: %w", err)
	}
	return len(values), nil
}
