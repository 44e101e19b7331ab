package queryengine

import (
	"errors"
	"fmt"

	"reportapi/internal/model"
)

var (
	// ErrQueryFailed matches every execution that ended FAILED or CANCELLED.
	ErrQueryFailed = errors.New("query execution failed")
	// ErrQueryTimeout is returned when an execution is still running after the maximum wait.
	ErrQueryTimeout = errors.New("query execution timed out")
	// ErrNoExecutionID is returned when the engine accepts a query but sends back no id.
	ErrNoExecutionID = errors.New("query engine returned no execution id")
)

// QueryFailedError carries the engine's own explanation of a failed execution.
type QueryFailedError struct {
	ExecutionID string
	State       model.QueryState
	Reason      string
}

func (e *QueryFailedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("query %s: %s", e.ExecutionID, e.State)
	}
	return fmt.Sprintf("query %s: %s: %s", e.ExecutionID, e.State, e.Reason)
}

func (e *QueryFailedError) Is(target error) bool {
	return target == ErrQueryFailed
}
