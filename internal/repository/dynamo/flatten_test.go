package dynamo

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenItem_Full(t *testing.T) {
	item := map[string]types.AttributeValue{
		"DOCUMENT_ID": &types.AttributeValueMemberS{Value: "D-1"},
		"FACTURA_ID":  &types.AttributeValueMemberS{Value: "F001-123"},
		"TOTAL":       &types.AttributeValueMemberN{Value: "118.00"},
		"STATUS":      &types.AttributeValueMemberS{Value: ""},
		"CLIENT": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"RUC":  &types.AttributeValueMemberS{Value: "20100070970"},
			"NAME": &types.AttributeValueMemberS{Value: "ACME SAC"},
		}},
		"INVOICE": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"NUMBER": &types.AttributeValueMemberS{Value: "F001-123"},
		}},
		"LINE_ITEMS": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			&types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
				"DESCRIPTION": &types.AttributeValueMemberS{Value: "Widget"},
				"QUANTITY":    &types.AttributeValueMemberN{Value: "2"},
			}},
			&types.AttributeValueMemberS{Value: "not a map"},
		}},
	}

	rec := FlattenItem(item)

	assert.Equal(t, "D-1", *rec.DocumentID)
	assert.Equal(t, "118.00", *rec.Total)
	require.NotNil(t, rec.Status)
	assert.Equal(t, "", *rec.Status)
	assert.Equal(t, "20100070970", *rec.Client.RUC)
	assert.Equal(t, "ACME SAC", *rec.Client.Name)
	assert.Equal(t, "F001-123", *rec.Invoice.Number)
	assert.Nil(t, rec.Invoice.IssueDate)
	require.Len(t, rec.LineItems, 2)
	assert.Equal(t, "Widget", *rec.LineItems[0].Description)
	assert.Equal(t, "2", *rec.LineItems[0].Quantity)
	assert.Nil(t, rec.LineItems[0].Amount)
	assert.Nil(t, rec.LineItems[1].Description)
}

func TestFlattenItem_MissingFieldsSerializeAsNull(t *testing.T) {
	rec := FlattenItem(map[string]types.AttributeValue{
		"DOCUMENT_ID": &types.AttributeValueMemberS{Value: "D-2"},
		"ADDRESS":     &types.AttributeValueMemberNULL{Value: true},
		"INVOICE":     &types.AttributeValueMemberS{Value: "wrong shape"},
	})

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))

	for _, k := range []string{"invoice_id", "date", "address", "total", "status", "document_location"} {
		v, ok := out[k]
		assert.True(t, ok, k)
		assert.Nil(t, v, k)
	}
	client := out["client"].(map[string]any)
	v, ok := client["ruc"]
	assert.True(t, ok)
	assert.Nil(t, v)
	invoice := out["invoice"].(map[string]any)
	v, ok = invoice["number"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, []any{}, out["line_items"])
}

func TestScalar(t *testing.T) {
	assert.Equal(t, "true", *scalar(&types.AttributeValueMemberBOOL{Value: true}))
	assert.Nil(t, scalar(&types.AttributeValueMemberNULL{Value: true}))
	assert.Nil(t, scalar(&types.AttributeValueMemberSS{Value: []string{"a"}}))
	assert.Nil(t, scalar(nil))
}

func TestFlattenItems_Order(t *testing.T) {
	recs := FlattenItems([]map[string]types.AttributeValue{doc("b"), doc("a")})
	require.Len(t, recs, 2)
	assert.Equal(t, "b", *recs[0].DocumentID)
	assert.Equal(t, "a", *recs[1].DocumentID)
	assert.NotNil(t, FlattenItems(nil))
}

// storedReport is the item shape written by the ingestion pipeline.
type storedReport struct {
	DocumentID string  `dynamodbav:"DOCUMENT_ID"`
	InvoiceID  string  `dynamodbav:"FACTURA_ID"`
	Total      float64 `dynamodbav:"TOTAL"`
	Paid       bool    `dynamodbav:"STATUS"`
	Address    *string `dynamodbav:"DIRECCION"`
	Client     struct {
		RUC  string `dynamodbav:"RUC"`
		Name string `dynamodbav:"NAME"`
	} `dynamodbav:"CLIENT"`
	LineItems []struct {
		Description string `dynamodbav:"DESCRIPTION"`
		Quantity    int    `dynamodbav:"QUANTITY"`
	} `dynamodbav:"LINE_ITEMS,omitempty"`
}

func TestFlattenItem_WriterShape(t *testing.T) {
	var r storedReport
	r.DocumentID = "D-9"
	r.InvoiceID = "F002-7"
	r.Total = 59.5
	r.Paid = true
	r.Client.RUC = "20512345678"
	r.Client.Name = "Comercial Lima"

	item, err := attributevalue.MarshalMap(r)
	require.NoError(t, err)

	rec := FlattenItem(item)

	assert.Equal(t, "D-9", *rec.DocumentID)
	assert.Equal(t, "59.5", *rec.Total)
	assert.Equal(t, "true", *rec.Status)
	assert.Nil(t, rec.Address, "nil pointer is stored as NULL")
	assert.Equal(t, "20512345678", *rec.Client.RUC)
	assert.Nil(t, rec.Invoice.Number)
	assert.NotNil(t, rec.LineItems)
	assert.Empty(t, rec.LineItems)
}
