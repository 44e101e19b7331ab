package dynamo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/smithy-go"
	"golang.org/x/time/rate"

	"reportapi/internal/model"
	"reportapi/internal/repository"
)

// ScanAPI is the subset of the DynamoDB client used here. *dynamodb.Client satisfies it.
type ScanAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

var _ ScanAPI = (*dynamodb.Client)(nil)

// ReportDynamo is a DynamoDB implementation of repository.ReportRepository.
type ReportDynamo struct {
	api     ScanAPI
	table   string
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewReportDynamo creates a ReportDynamo. pagesPerSecond paces SearchAll;
// zero or less disables pacing.
func NewReportDynamo(api ScanAPI, table string, pagesPerSecond float64, logger *slog.Logger) *ReportDynamo {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if pagesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(pagesPerSecond), 1)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportDynamo{api: api, table: table, limiter: limiter, logger: logger}
}

var _ repository.ReportRepository = (*ReportDynamo)(nil)

// searchFilter matches items whose client tax id or invoice number contains term.
func searchFilter(term string) (expression.Expression, error) {
	cond := expression.Name(attrClient + "." + attrClientRUC).Contains(term).
		Or(expression.Name(attrInvoice + "." + attrInvoiceNumber).Contains(term))
	return expression.NewBuilder().WithFilter(cond).Build()
}

func (r *ReportDynamo) scanInput(limit int, startKey, term string) (*dynamodb.ScanInput, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.table)}
	if limit > 0 {
		in.Limit = aws.Int32(int32(limit))
	}
	key, err := DecodeKey(startKey)
	if err != nil {
		return nil, err
	}
	in.ExclusiveStartKey = key
	if term != "" {
		expr, err := searchFilter(term)
		if err != nil {
			return nil, fmt.Errorf("build search filter: %w", err)
		}
		in.FilterExpression = expr.Filter()
		in.ExpressionAttributeNames = expr.Names()
		in.ExpressionAttributeValues = expr.Values()
	}
	return in, nil
}

// scanError logs the service error code, if any, and wraps err with the table name.
func (r *ReportDynamo) scanError(ctx context.Context, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		r.logger.WarnContext(ctx, "dynamodb_scan_failed",
			"table", r.table,
			"error_code", apiErr.ErrorCode(),
			"error_message", apiErr.ErrorMessage(),
			"fault", apiErr.ErrorFault().String(),
		)
	}
	return fmt.Errorf("scan %s: %w", r.table, err)
}

// ScanPage reads one page of the table.
func (r *ReportDynamo) ScanPage(ctx context.Context, q repository.ScanQuery) (*repository.ScanResult, error) {
	in, err := r.scanInput(q.Limit, q.StartKey, q.SearchTerm)
	if err != nil {
		return nil, err
	}
	out, err := r.api.Scan(ctx, in)
	if err != nil {
		return nil, r.scanError(ctx, err)
	}
	last, err := EncodeKey(out.LastEvaluatedKey)
	if err != nil {
		return nil, err
	}
	return &repository.ScanResult{Items: FlattenItems(out.Items), LastKey: last}, nil
}

// SearchAll walks every page of the table with the search filter attached and
// collects the matches. The walk is linear in table size; maxResults bounds the
// response, not the number of pages read before the cap is hit.
func (r *ReportDynamo) SearchAll(ctx context.Context, term string, maxResults int) (*repository.SearchResult, error) {
	in, err := r.scanInput(0, "", term)
	if err != nil {
		return nil, err
	}

	res := &repository.SearchResult{}
	pages := 0
	for {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		out, err := r.api.Scan(ctx, in)
		if err != nil {
			return nil, r.scanError(ctx, err)
		}
		pages++

		for _, it := range out.Items {
			if maxResults > 0 && len(res.Items) >= maxResults {
				res.Truncated = true
				break
			}
			res.Items = append(res.Items, FlattenItem(it))
		}
		more := len(out.LastEvaluatedKey) > 0
		// A cap reached on a page boundary stops the walk; whether anything
		// was left out is only known from the remaining key.
		if full := maxResults > 0 && len(res.Items) >= maxResults; full && more {
			res.Truncated = true
		}
		if res.Truncated || !more {
			break
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}

	if res.Items == nil {
		res.Items = []model.DocumentRecord{}
	}
	r.logger.DebugContext(ctx, "report_search_done", "pages", pages, "matches", len(res.Items), "truncated", res.Truncated)
	return res, nil
}
