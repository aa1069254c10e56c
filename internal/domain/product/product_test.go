package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New("P1", "Widget", decimal.NewFromFloat(9.99), 5)
	require.NoError(t, err)
	assert.Equal(t, "P1", p.ID)
	assert.Equal(t, 5, p.Quantity)
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		pname    string
		price    decimal.Decimal
		quantity int
		want     error
	}{
		{"missing id", "", "Widget", decimal.NewFromInt(1), 1, ErrInvalidID},
		{"missing name", "P1", "", decimal.NewFromInt(1), 1, ErrInvalidName},
		{"negative price", "P1", "Widget", decimal.NewFromInt(-1), 1, ErrInvalidPrice},
		{"negative quantity", "P1", "Widget", decimal.NewFromInt(1), -1, ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, tt.pname, tt.price, tt.quantity)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNew_ZeroValuesAllowed(t *testing.T) {
	// Free products and empty stock are both valid catalog states.
	p, err := New("P1", "Widget", decimal.Zero, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
	assert.True(t, p.Price.IsZero())
}
