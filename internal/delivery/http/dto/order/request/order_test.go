package request

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/LavaJover/restaurant-orders/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	return verr.Fields
}

func TestDecodeCreate(t *testing.T) {
	body := `{"table_number": 3, "total_price": "999.00", "items": [
		{"item": "Soup", "price": 5.5},
		{"item": "Bread", "price": "1.25"}
	]}`

	req, err := DecodeOrderWrite(strings.NewReader(body), OpCreate)
	require.NoError(t, err)
	assert.Equal(t, OpCreate, req.Kind())

	input := req.ToCreateInput()
	assert.Equal(t, 3, input.TableNumber)
	assert.Equal(t, domain.StatusPending, input.Status)
	require.Len(t, input.Items, 2)
	assert.Equal(t, "Soup", input.Items[0].Name)
	assert.Equal(t, "5.50", input.Items[0].Price.StringFixed(2))
	assert.Equal(t, "1.25", input.Items[1].Price.String())
}

func TestDecodeCreateWithoutItems(t *testing.T) {
	req, err := DecodeOrderWrite(strings.NewReader(`{"table_number": 1, "status": "paid"}`), OpCreate)
	require.NoError(t, err)

	input := req.ToCreateInput()
	assert.Equal(t, domain.StatusPaid, input.Status)
	assert.NotNil(t, input.Items)
	assert.Empty(t, input.Items)
}

func TestDecodeCreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing table", `{"items": []}`, "table_number"},
		{"zero table", `{"table_number": 0}`, "table_number"},
		{"table is a string", `{"table_number": "three"}`, "table_number"},
		{"unknown status", `{"table_number": 1, "status": "cooking"}`, "status"},
		{"missing item name", `{"table_number": 1, "items": [{"price": "1.00"}]}`, "items[0].item"},
		{"blank item name", `{"table_number": 1, "items": [{"item": "  ", "price": "1.00"}]}`, "items[0].item"},
		{"missing price", `{"table_number": 1, "items": [{"item": "Tea"}]}`, "items[0].price"},
		{"bad price", `{"table_number": 1, "items": [{"item": "Tea", "price": "cheap"}]}`, "items[0].price"},
		{"negative price", `{"table_number": 1, "items": [{"item": "Tea", "price": -1}]}`, "items[0].price"},
		{"three decimals", `{"table_number": 1, "items": [{"item": "Tea", "price": "1.005"}]}`, "items[0].price"},
		{"too large", `{"table_number": 1, "items": [{"item": "Tea", "price": "100000"}]}`, "items[0].price"},
		{"zero id", `{"table_number": 1, "items": [{"id": 0, "item": "Tea", "price": "1"}]}`, "items[0].id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeOrderWrite(strings.NewReader(tt.body), OpCreate)
			assert.Contains(t, fieldErrors(t, err), tt.field)
		})
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := DecodeOrderWrite(strings.NewReader(`{"table_number": `), OpCreate)
	assert.Contains(t, fieldErrors(t, err), "non_field_errors")

	_, err = DecodeOrderWrite(strings.NewReader(``), OpCreate)
	assert.Contains(t, fieldErrors(t, err), "non_field_errors")
}

func TestDecodeUpdateRequiresTableNumber(t *testing.T) {
	_, err := DecodeOrderWrite(strings.NewReader(`{"status": "готов"}`), OpUpdate)
	assert.Contains(t, fieldErrors(t, err), "table_number")
}

func TestDecodePartialUpdate(t *testing.T) {
	req, err := DecodeOrderWrite(strings.NewReader(`{"status": "Готов"}`), OpPartialUpdate)
	require.NoError(t, err)

	input := req.ToUpdateInput()
	assert.Nil(t, input.TableNumber)
	require.NotNil(t, input.Status)
	assert.Equal(t, domain.StatusReady, *input.Status)
	assert.False(t, input.SyncItems)
}

func TestDecodeUpdateItems(t *testing.T) {
	body := `{"table_number": 3, "items": [{"id": 7, "item": "Soup", "price": "6.00"}, {"item": "Salad", "price": "4"}]}`
	req, err := DecodeOrderWrite(strings.NewReader(body), OpUpdate)
	require.NoError(t, err)

	input := req.ToUpdateInput()
	assert.True(t, input.SyncItems)
	require.Len(t, input.Items, 2)
	require.NotNil(t, input.Items[0].ID)
	assert.Equal(t, uint(7), *input.Items[0].ID)
	assert.Nil(t, input.Items[1].ID)
}

func TestDecodeUpdateEmptyItemsClearsOrder(t *testing.T) {
	req, err := DecodeOrderWrite(strings.NewReader(`{"items": []}`), OpPartialUpdate)
	require.NoError(t, err)

	input := req.ToUpdateInput()
	assert.True(t, input.SyncItems)
	assert.Empty(t, input.Items)
}

func TestParsePrice(t *testing.T) {
	price, err := ParsePrice(" 6 ")
	require.NoError(t, err)
	assert.Equal(t, "6.00", price.StringFixed(2))

	_, err = ParsePrice("")
	assert.Error(t, err)

	price, err = ParsePrice("99999.99")
	require.NoError(t, err)
	assert.Equal(t, "99999.99", price.String())

	price, err = ParsePrice("5.500000000000")
	require.NoError(t, err)
	assert.Equal(t, "5.50", price.StringFixed(2))
}

func TestParsePriceRejectsExtremeExponents(t *testing.T) {
	for _, raw := range []string{
		"1e-20000000",
		"1e-2000000000",
		"1e20000000",
		"0e100",
		"1." + strings.Repeat("0", 40),
	} {
		t.Run(raw[:min(len(raw), 16)], func(t *testing.T) {
			start := time.Now()
			_, err := ParsePrice(raw)
			require.Error(t, err)
			assert.Equal(t, "A valid number is required.", err.Error())
			assert.Less(t, time.Since(start), time.Second)
		})
	}
}

func TestDecodeCreateHugePriceExponent(t *testing.T) {
	start := time.Now()
	_, err := DecodeOrderWrite(strings.NewReader(
		`{"table_number":1,"items":[{"item":"x","price":"1e-20000000"}]}`), OpCreate)
	assert.Equal(t, []string{"A valid number is required."}, fieldErrors(t, err)["items[0].price"])
	assert.Less(t, time.Since(start), time.Second)
}

func TestParseItemID(t *testing.T) {
	id, err := ParseItemID("")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = ParseItemID("12")
	require.NoError(t, err)
	assert.Equal(t, uint(12), *id)

	_, err = ParseItemID("0")
	assert.Error(t, err)
	_, err = ParseItemID("x")
	assert.Error(t, err)
}

func TestOperationKindString(t *testing.T) {
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "update", OpUpdate.String())
	assert.Equal(t, "partial_update", OpPartialUpdate.String())
	assert.Equal(t, "OperationKind(3)", OperationKind(3).String())
}
