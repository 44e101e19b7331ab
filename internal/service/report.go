package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"slices"

	"reportapi/internal/model"
	"reportapi/internal/repository"
)

const (
	defaultReportLimit = 10
	maxReportLimit     = 100
	// maxCursorTrail bounds how many earlier start keys a cursor carries.
	// Walking back past the oldest kept key lands on the first page.
	maxCursorTrail = 10
)

// SearchMode selects how a search term is applied to the report listing.
type SearchMode string

const (
	// SearchAll walks the whole table and returns every match at once.
	SearchAll SearchMode = "all"
	// SearchPage filters each scan page and keeps cursor navigation.
	SearchPage SearchMode = "page"
)

// ReportQuery is one request for the report listing.
type ReportQuery struct {
	Limit          int
	Cursor         string
	PreviousCursor string
	SearchTerm     string
	SearchMode     SearchMode
}

// ReportOptions configures ReportService.
type ReportOptions struct {
	DefaultLimit     int
	SearchMaxResults int
}

// ReportService lists report items with opaque, bidirectional cursors.
type ReportService interface {
	List(ctx context.Context, q ReportQuery) (*model.ReportPage, error)
}

type reportService struct {
	repo repository.ReportRepository
	opts ReportOptions
}

// NewReportService constructs a ReportService.
func NewReportService(repo repository.ReportRepository, opts ReportOptions) ReportService {
	if opts.DefaultLimit <= 0 || opts.DefaultLimit > maxReportLimit {
		opts.DefaultLimit = defaultReportLimit
	}
	return &reportService{repo: repo, opts: opts}
}

// pageCursor is the decoded form of the tokens handed to clients. Key is the
// start key of the page it points at, empty for the first page. Trail holds
// the start keys of every page before it, oldest first.
type pageCursor struct {
	Key   string   `json:"k,omitempty"`
	Trail []string `json:"t,omitempty"`
}

func (c pageCursor) encode() string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// next points at the page starting after lastKey. Only the newest
// maxCursorTrail keys are kept.
func (c pageCursor) next(lastKey string) pageCursor {
	trail := append(slices.Clone(c.Trail), c.Key)
	if n := len(trail) - maxCursorTrail; n > 0 {
		trail = trail[n:]
	}
	return pageCursor{Key: lastKey, Trail: trail}
}

// previous points at the page before c. A cursor with a key but no trail
// falls back to the first page.
func (c pageCursor) previous() pageCursor {
	if len(c.Trail) == 0 {
		return pageCursor{}
	}
	last := len(c.Trail) - 1
	return pageCursor{Key: c.Trail[last], Trail: slices.Clone(c.Trail[:last])}
}

func decodeCursor(token string) (pageCursor, error) {
	var c pageCursor
	if token == "" {
		return c, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

func (s *reportService) List(ctx context.Context, q ReportQuery) (*model.ReportPage, error) {
	limit := q.Limit
	if limit == 0 {
		limit = s.opts.DefaultLimit
	}
	if limit < 1 || limit > maxReportLimit {
		return nil, invalid("limit", "must be between 1 and %d", maxReportLimit)
	}

	mode := q.SearchMode
	switch mode {
	case "":
		mode = SearchAll
	case SearchAll, SearchPage:
	default:
		return nil, invalid("searchMode", "must be %q or %q", SearchAll, SearchPage)
	}

	if q.SearchTerm != "" && mode == SearchAll {
		res, err := s.repo.SearchAll(ctx, q.SearchTerm, s.opts.SearchMaxResults)
		if err != nil {
			return nil, err
		}
		return &model.ReportPage{Items: nonNil(res.Items), Truncated: res.Truncated}, nil
	}

	// Both tokens come from the same encoder; a forward token wins.
	field, token := "lastEvaluatedKey", q.Cursor
	if token == "" {
		field, token = "previousEvaluatedKey", q.PreviousCursor
	}
	cur, err := decodeCursor(token)
	if err != nil {
		return nil, invalid(field, "malformed cursor")
	}

	res, err := s.repo.ScanPage(ctx, repository.ScanQuery{Limit: limit, StartKey: cur.Key, SearchTerm: q.SearchTerm})
	if errors.Is(err, repository.ErrInvalidKey) {
		return nil, invalid(field, "malformed cursor")
	}
	if err != nil {
		return nil, err
	}

	page := &model.ReportPage{Items: nonNil(res.Items)}
	if res.LastKey != "" {
		next := cur.next(res.LastKey).encode()
		page.HasNextPage = true
		page.NextCursor = &next
	}
	if cur.Key != "" {
		prev := cur.previous().encode()
		page.HasPreviousPage = true
		page.PreviousCursor = &prev
	}
	return page, nil
}

func nonNil(items []model.DocumentRecord) []model.DocumentRecord {
	if items == nil {
		return []model.DocumentRecord{}
	}
	return items
}
