package model

// DocumentRecord is a report item flattened out of the key-value store's typed
// attribute format. Every field is always present; missing values are null.
type DocumentRecord struct {
	DocumentID       *string    `json:"document_id"`
	InvoiceID        *string    `json:"invoice_id"`
	Date             *string    `json:"date"`
	Address          *string    `json:"address"`
	Total            *string    `json:"total"`
	Status           *string    `json:"status"`
	DocumentLocation *string    `json:"document_location"`
	Client           Client     `json:"client"`
	Invoice          Invoice    `json:"invoice"`
	LineItems        []LineItem `json:"line_items"`
}

type Client struct {
	RUC  *string `json:"ruc"`
	Name *string `json:"name"`
}

type Invoice struct {
	Number    *string `json:"number"`
	IssueDate *string `json:"issue_date"`
	Currency  *string `json:"currency"`
}

type LineItem struct {
	Description *string `json:"description"`
	Quantity    *string `json:"quantity"`
	UnitPrice   *string `json:"unit_price"`
	Amount      *string `json:"amount"`
}

// ReportPage is one page of the report listing.
type ReportPage struct {
	Items           []DocumentRecord `json:"items"`
	HasNextPage     bool             `json:"hasNextPage"`
	NextCursor      *string          `json:"nextEvaluatedKey"`
	HasPreviousPage bool             `json:"hasPreviousPage"`
	PreviousCursor  *string          `json:"previousEvaluatedKey"`
	// Truncated is set when an exhaustive search stopped at its result cap.
	Truncated bool `json:"truncated"`
}
