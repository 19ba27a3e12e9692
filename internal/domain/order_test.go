package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want OrderStatus
	}{
		{"в ожидании", StatusPending},
		{"Готов", StatusReady},
		{" оплачен ", StatusPaid},
		{"pending", StatusPending},
		{"READY", StatusReady},
		{"paid", StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseOrderStatus(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseOrderStatus("cooking")
	assert.EqualError(t, err, `"cooking" is not a valid choice`)

	_, err = ParseOrderStatus("")
	assert.Error(t, err)
}

func TestOrderStatusesIsACopy(t *testing.T) {
	statuses := OrderStatuses()
	require.Len(t, statuses, 3)
	statuses[0] = "broken"

	assert.Equal(t, StatusPending, OrderStatuses()[0])
	assert.False(t, OrderStatus("broken").Valid())
	assert.Equal(t, "Оплачен", StatusPaid.Label())
}

func TestValidationError(t *testing.T) {
	verr := NewValidationError()
	assert.NoError(t, verr.OrNil())

	verr.Add("table_number", "This field is required.")
	verr.Add("items[0].price", "A valid number is required.")
	verr.Add("items[0].price", "Ensure this value is greater than or equal to 0.")

	require.Error(t, verr.OrNil())
	assert.True(t, verr.HasErrors())
	assert.Equal(t,
		"validation failed: items[0].price: A valid number is required., Ensure this value is greater than or equal to 0.; table_number: This field is required.",
		verr.Error(),
	)

	var nilErr *ValidationError
	assert.NoError(t, nilErr.OrNil())
}
