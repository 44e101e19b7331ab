package queryengine

import (
	"fmt"
	"regexp"
	"strings"
)

// RowNumberColumn is the synthetic rank column added by WindowQuery.
const RowNumberColumn = "row_num"

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// QuoteLiteral renders s as a SQL string literal. It is the only place user
// supplied values are turned into SQL text.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ContainsPattern renders a LIKE pattern matching any value containing s.
// Wildcards inside s match literally; use with ESCAPE '\'.
func ContainsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return QuoteLiteral("%" + r.Replace(s) + "%")
}

// QuoteTable validates a "table" or "database.table" name and quotes each part.
func QuoteTable(name string) (string, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("invalid table name %q", name)
	}
	for i, p := range parts {
		if !identPattern.MatchString(p) {
			return "", fmt.Errorf("invalid table name %q", name)
		}
		parts[i] = `"` + p + `"`
	}
	return strings.Join(parts, "."), nil
}

// Ordering is the stable ranking used to number rows for pagination.
type Ordering string

const (
	OrderByDocumentID Ordering = "document_id"
	OrderByIssueDate  Ordering = "issue_date"
)

// ParseOrdering accepts "document_id" or "issue_date".
func ParseOrdering(s string) (Ordering, error) {
	switch Ordering(s) {
	case OrderByDocumentID, OrderByIssueDate:
		return Ordering(s), nil
	default:
		return "", fmt.Errorf("unsupported ordering %q", s)
	}
}

func (o Ordering) clause() string {
	if o == OrderByIssueDate {
		return "issue_date DESC, document_id"
	}
	return "document_id"
}

// Filter restricts a listing. Column must already be validated against the
// allow-list; it is written into the query as an identifier.
type Filter struct {
	Status string
	Column string
	Value  string
}

func (f Filter) where() (string, []string) {
	var (
		conds  []string
		params []string
	)
	if f.Status != "" {
		conds = append(conds, "status = ?")
		params = append(params, QuoteLiteral(f.Status))
	}
	if f.Column != "" && f.Value != "" {
		conds = append(conds, f.Column+` LIKE ? ESCAPE '\'`)
		params = append(params, ContainsPattern(f.Value))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), params
}

// WindowQuery ranks every matching row and selects ranks [start, end].
func WindowQuery(table string, order Ordering, f Filter, start, end int) Statement {
	where, params := f.where()
	sql := fmt.Sprintf(`WITH numbered_data AS (
    SELECT ROW_NUMBER() OVER (ORDER BY %s) AS %s, *
    FROM %s%s
)
SELECT *
FROM numbered_data
WHERE %s BETWEEN %d AND %d
ORDER BY %s`, order.clause(), RowNumberColumn, table, where, RowNumberColumn, start, end, RowNumberColumn)
	return Statement{SQL: sql, Params: params}
}

// CountQuery counts the rows WindowQuery ranks for the same filter.
func CountQuery(table string, f Filter) Statement {
	where, params := f.where()
	return Statement{
		SQL:    fmt.Sprintf("SELECT COUNT(*) AS total FROM %s%s", table, where),
		Params: params,
	}
}

// ColumnMatchQuery returns up to limit values of column containing value.
func ColumnMatchQuery(table, column, value string, limit int) Statement {
	return Statement{
		SQL:    fmt.Sprintf(`SELECT %s FROM %s WHERE %s LIKE ? ESCAPE '\' LIMIT %d`, column, table, column, limit),
		Params: []string{ContainsPattern(value)},
	}
}

// DistinctColumnQuery returns every distinct non-null value of column.
func DistinctColumnQuery(table, column string) Statement {
	return Statement{
		SQL: fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL ORDER BY %s", column, table, column, column),
	}
}
