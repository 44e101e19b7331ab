package queryengine

import (
	"context"

	"reportapi/internal/model"
)

// PageFetcher reads one result page of an execution.
type PageFetcher interface {
	FetchPage(ctx context.Context, id string, token *string) (model.ResultPage, error)
}

// ParsePage returns the data rows of page. The engine repeats the column
// header only as the first row of the first page, so skipHeader must be true
// for that page and false for every continuation page.
func ParsePage(page model.ResultPage, skipHeader bool) []model.Row {
	rows := page.Rows
	if skipHeader && len(rows) > 0 {
		rows = rows[1:]
	}
	out := make([]model.Row, len(rows))
	copy(out, rows)
	return out
}

// FetchAll follows continuation tokens until the engine sends none and
// concatenates the rows in page order.
func FetchAll(ctx context.Context, f PageFetcher, id string) (model.ResultSet, error) {
	var (
		rs    model.ResultSet
		token *string
		first = true
	)
	for {
		page, err := f.FetchPage(ctx, id, token)
		if err != nil {
			return model.ResultSet{}, err
		}
		if first {
			rs.Columns = columnNames(page)
		}
		rs.Rows = append(rs.Rows, ParsePage(page, first)...)
		first = false

		if page.NextToken == nil || *page.NextToken == "" {
			break
		}
		token = page.NextToken
	}
	if rs.Rows == nil {
		rs.Rows = []model.Row{}
	}
	return rs, nil
}

// columnNames prefers result metadata and falls back to the header row.
func columnNames(page model.ResultPage) []string {
	if len(page.Columns) > 0 {
		return page.Columns
	}
	if len(page.Rows) == 0 {
		return nil
	}
	header := page.Rows[0]
	names := make([]string, len(header))
	for i, cell := range header {
		if cell != nil {
			names[i] = *cell
		}
	}
	return names
}
