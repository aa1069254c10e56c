package catalog

import (
	"context"
	"testing"

	"gomart/internal/domain/product"
	"gomart/internal/infrastructure/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedIDGen struct{ id string }

func (g fixedIDGen) NewID() string { return g.id }

func TestCreate(t *testing.T) {
	repo := memory.NewProductRepository()
	svc := NewService(repo, fixedIDGen{id: "P1"}, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Widget", decimal.NewFromInt(10), 5)
	require.NoError(t, err)
	assert.Equal(t, "P1", created.ID)
	assert.Equal(t, 5, created.Quantity)
	assert.True(t, created.Price.Equal(decimal.NewFromInt(10)))
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := memory.NewProductRepository()
	svc := NewService(repo, fixedIDGen{id: "P1"}, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Widget", decimal.NewFromInt(10), 5)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Widget", decimal.NewFromInt(12), 3)
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestCreate_InvalidEntity(t *testing.T) {
	repo := memory.NewProductRepository()
	svc := NewService(repo, fixedIDGen{id: "P1"}, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Widget", decimal.NewFromInt(-1), 5)
	assert.ErrorIs(t, err, product.ErrInvalidPrice)

	_, err = svc.Create(ctx, "Widget", decimal.NewFromInt(1), -5)
	assert.ErrorIs(t, err, product.ErrInvalidQuantity)
}
