package model

// Columns accepted by the free-text filter of the lake listing.
const (
	ColumnClientRUC        = "client_ruc"
	ColumnDocumentNumber   = "document_number"
	ColumnDocumentLocation = "document_location"
	ColumnClientName       = "client_name"
)

var filterColumns = map[string]bool{
	ColumnClientRUC:        true,
	ColumnDocumentNumber:   true,
	ColumnDocumentLocation: true,
	ColumnClientName:       true,
}

// IsFilterColumn reports whether column is on the filter allow-list.
func IsFilterColumn(column string) bool {
	return filterColumns[column]
}

// PaginationRequest describes one page of the lake listing.
type PaginationRequest struct {
	Page         int
	Limit        int
	FilterColumn string
	FilterValue  string
	Status       string
}

// PaginationEnvelope is derived from the request and the total row count.
type PaginationEnvelope struct {
	CurrentPage  int  `json:"current_page"`
	PerPage      int  `json:"per_page"`
	Total        int  `json:"total"`
	TotalPages   int  `json:"total_pages"`
	From         int  `json:"from"`
	To           int  `json:"to"`
	PreviousPage *int `json:"previous_page"`
	NextPage     *int `json:"next_page"`
}

// PaginatedRecords is the result of one listing call.
type PaginatedRecords struct {
	Data       []Record           `json:"data"`
	Pagination PaginationEnvelope `json:"pagination"`
}
