package model

// QueryState is the lifecycle state reported by the query engine for one execution.
type QueryState string

const (
	QueryQueued    QueryState = "QUEUED"
	QueryRunning   QueryState = "RUNNING"
	QuerySucceeded QueryState = "SUCCEEDED"
	QueryFailed    QueryState = "FAILED"
	QueryCancelled QueryState = "CANCELLED"
)

// IsTerminal reports whether the engine will not move the execution any further.
// Unknown states are treated as still in progress.
func (s QueryState) IsTerminal() bool {
	switch s {
	case QuerySucceeded, QueryFailed, QueryCancelled:
		return true
	default:
		return false
	}
}

// QueryExecution is a snapshot of an execution as last seen by Poll.
type QueryExecution struct {
	ID            string
	State         QueryState
	FailureReason *string
}

// Row is one result row. A nil cell means the engine sent no value, which is
// different from an empty string.
type Row []*string

// ResultPage is one page of results as fetched from the engine.
type ResultPage struct {
	Columns   []string
	Rows      []Row
	NextToken *string
}

// ResultSet is the concatenation of every page of one execution, header removed.
type ResultSet struct {
	Columns []string
	Rows    []Row
}

// Record is a row keyed by column name.
type Record map[string]*string

// Records converts rows to column-keyed records, leaving out the named columns.
func (rs ResultSet) Records(omit ...string) []Record {
	skip := make(map[string]bool, len(omit))
	for _, c := range omit {
		skip[c] = true
	}
	out := make([]Record, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		rec := make(Record, len(rs.Columns))
		for i, col := range rs.Columns {
			if skip[col] {
				continue
			}
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = nil
			}
		}
		out = append(out, rec)
	}
	return out
}
