package repository

import (
	"context"
	"errors"

	"reportapi/internal/model"
)

// ErrInvalidKey is returned when a scan start key token cannot be decoded.
var ErrInvalidKey = errors.New("invalid scan key")

// ReportRepository reads report items from the key-value store with filtered scans.
// Keys are opaque strings produced by the implementation; callers hand them back
// unchanged to resume a scan.
type ReportRepository interface {
	// ScanPage reads at most q.Limit items starting after q.StartKey.
	// When q.SearchTerm is set only matching items are returned; the store applies
	// the limit before the filter, so a page may hold fewer items than requested.
	ScanPage(ctx context.Context, q ScanQuery) (*ScanResult, error)

	// SearchAll scans the whole table and returns every item matching term, up to
	// maxResults items (zero means no cap).
	SearchAll(ctx context.Context, term string, maxResults int) (*SearchResult, error)
}

// ScanQuery holds the parameters of one scan page.
type ScanQuery struct {
	Limit      int
	StartKey   string
	SearchTerm string
}

// ScanResult is one scan page. LastKey is empty when the table is exhausted.
type ScanResult struct {
	Items   []model.DocumentRecord
	LastKey string
}

// SearchResult is the outcome of an exhaustive search.
type SearchResult struct {
	Items     []model.DocumentRecord
	Truncated bool
}
