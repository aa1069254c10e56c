package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	items := []LineItem{
		{ProductID: "P1", Price: decimal.NewFromInt(10), Quantity: 3},
		{ProductID: "P2", Price: decimal.NewFromFloat(2.5), Quantity: 2},
	}

	o, err := New("O1", "C1", items)
	require.NoError(t, err)
	assert.Equal(t, "O1", o.ID)
	assert.Equal(t, "C1", o.CustomerID)
	assert.Len(t, o.Items, 2)
	assert.False(t, o.CreatedAt.IsZero())

	// The order owns its own copy of the items.
	items[0].Quantity = 99
	assert.Equal(t, 3, o.Items[0].Quantity)
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", "C1", nil)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = New("O1", "", nil)
	assert.ErrorIs(t, err, ErrInvalidCustomerID)
}

func TestClone(t *testing.T) {
	o, err := New("O1", "C1", []LineItem{{ProductID: "P1", Price: decimal.NewFromInt(10), Quantity: 1}})
	require.NoError(t, err)

	clone := o.Clone()
	clone.Items[0].Quantity = 42
	assert.Equal(t, 1, o.Items[0].Quantity)
}

func TestTotal(t *testing.T) {
	o, err := New("O1", "C1", []LineItem{
		{ProductID: "P1", Price: decimal.NewFromInt(10), Quantity: 3},
		{ProductID: "P2", Price: decimal.NewFromFloat(0.5), Quantity: 4},
	})
	require.NoError(t, err)

	assert.True(t, o.Total().Equal(decimal.NewFromInt(32)))
}
