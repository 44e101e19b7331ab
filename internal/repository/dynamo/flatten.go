package dynamo

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"reportapi/internal/model"
)

// Attribute names of the report table.
const (
	attrDocumentID       = "DOCUMENT_ID"
	attrInvoiceID        = "FACTURA_ID"
	attrDate             = "FECHA"
	attrAddress          = "DIRECCION"
	attrTotal            = "TOTAL"
	attrStatus           = "STATUS"
	attrDocumentLocation = "DOCUMENT_LOCATION"
	attrClient           = "CLIENT"
	attrClientRUC        = "RUC"
	attrClientName       = "NAME"
	attrInvoice          = "INVOICE"
	attrInvoiceNumber    = "NUMBER"
	attrInvoiceIssueDate = "ISSUE_DATE"
	attrInvoiceCurrency  = "CURRENCY"
	attrLineItems        = "LINE_ITEMS"
	attrDescription      = "DESCRIPTION"
	attrQuantity         = "QUANTITY"
	attrUnitPrice        = "UNIT_PRICE"
	attrAmount           = "AMOUNT"
)

// scalar unwraps a typed attribute into a bare string. NULL, missing and
// non-scalar attributes give nil.
func scalar(av types.AttributeValue) *string {
	var s string
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		s = v.Value
	case *types.AttributeValueMemberN:
		s = v.Value
	case *types.AttributeValueMemberBOOL:
		s = strconv.FormatBool(v.Value)
	default:
		return nil
	}
	return &s
}

// nested returns the map held by a map attribute, or nil.
func nested(item map[string]types.AttributeValue, name string) map[string]types.AttributeValue {
	if m, ok := item[name].(*types.AttributeValueMemberM); ok {
		return m.Value
	}
	return nil
}

// FlattenItem converts a raw store item into a DocumentRecord. Missing fields,
// top-level or nested, come out as nil; LineItems is never nil.
func FlattenItem(item map[string]types.AttributeValue) model.DocumentRecord {
	client := nested(item, attrClient)
	invoice := nested(item, attrInvoice)

	rec := model.DocumentRecord{
		DocumentID:       scalar(item[attrDocumentID]),
		InvoiceID:        scalar(item[attrInvoiceID]),
		Date:             scalar(item[attrDate]),
		Address:          scalar(item[attrAddress]),
		Total:            scalar(item[attrTotal]),
		Status:           scalar(item[attrStatus]),
		DocumentLocation: scalar(item[attrDocumentLocation]),
		Client: model.Client{
			RUC:  scalar(client[attrClientRUC]),
			Name: scalar(client[attrClientName]),
		},
		Invoice: model.Invoice{
			Number:    scalar(invoice[attrInvoiceNumber]),
			IssueDate: scalar(invoice[attrInvoiceIssueDate]),
			Currency:  scalar(invoice[attrInvoiceCurrency]),
		},
		LineItems: []model.LineItem{},
	}

	if list, ok := item[attrLineItems].(*types.AttributeValueMemberL); ok {
		for _, el := range list.Value {
			var fields map[string]types.AttributeValue
			if m, ok := el.(*types.AttributeValueMemberM); ok {
				fields = m.Value
			}
			rec.LineItems = append(rec.LineItems, model.LineItem{
				Description: scalar(fields[attrDescription]),
				Quantity:    scalar(fields[attrQuantity]),
				UnitPrice:   scalar(fields[attrUnitPrice]),
				Amount:      scalar(fields[attrAmount]),
			})
		}
	}
	return rec
}

// FlattenItems converts a slice of raw items, preserving order.
func FlattenItems(items []map[string]types.AttributeValue) []model.DocumentRecord {
	out := make([]model.DocumentRecord, 0, len(items))
	for _, it := range items {
		out = append(out, FlattenItem(it))
	}
	return out
}
