package memory

import (
	"context"
	"testing"

	domcustomer "gomart/internal/domain/customer"
	domorder "gomart/internal/domain/order"
	domproduct "gomart/internal/domain/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository(t *testing.T) {
	repo := NewCustomerRepository()
	ctx := context.Background()

	c, err := domcustomer.New("C1", "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	_, err = repo.Create(ctx, c)
	require.NoError(t, err)

	byID, err := repo.FindByID(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)

	byEmail, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "C1", byEmail.ID)

	_, err = repo.FindByID(ctx, "C2")
	assert.ErrorIs(t, err, domcustomer.ErrNotFound)
	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domcustomer.ErrNotFound)
}

func TestCustomerRepository_ClonesOnRead(t *testing.T) {
	repo := NewCustomerRepository()
	ctx := context.Background()

	c, err := domcustomer.New("C1", "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	_, err = repo.Create(ctx, c)
	require.NoError(t, err)

	first, err := repo.FindByID(ctx, "C1")
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := repo.FindByID(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", second.Name)
}

func seedProducts(t *testing.T, repo *ProductRepository) {
	t.Helper()
	ctx := context.Background()
	for _, spec := range []struct {
		id, name string
		price    int64
		quantity int
	}{
		{"P1", "Widget", 10, 5},
		{"P2", "Gadget", 25, 0},
	} {
		p, err := domproduct.New(spec.id, spec.name, decimal.NewFromInt(spec.price), spec.quantity)
		require.NoError(t, err)
		_, err = repo.Create(ctx, p)
		require.NoError(t, err)
	}
}

func TestProductRepository_FindAllByID(t *testing.T) {
	repo := NewProductRepository()
	seedProducts(t, repo)
	ctx := context.Background()

	// Unknown ids are skipped, duplicates collapsed.
	products, err := repo.FindAllByID(ctx, []domproduct.Selection{
		{ID: "P1", Quantity: 1},
		{ID: "P1", Quantity: 2},
		{ID: "P7", Quantity: 1},
		{ID: "P2", Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, products, 2)

	ids := []string{products[0].ID, products[1].ID}
	assert.ElementsMatch(t, []string{"P1", "P2"}, ids)
}

func TestProductRepository_UpdateQuantity(t *testing.T) {
	repo := NewProductRepository()
	seedProducts(t, repo)
	ctx := context.Background()

	updated, err := repo.UpdateQuantity(ctx, []domproduct.Product{
		{ID: "P1", Name: "Widget", Price: decimal.NewFromInt(10), Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, 2, updated[0].Quantity)

	stored, err := repo.FindAllByID(ctx, []domproduct.Selection{{ID: "P1"}})
	require.NoError(t, err)
	assert.Equal(t, 2, stored[0].Quantity)
}

func TestProductRepository_UpdateQuantity_UnknownProduct(t *testing.T) {
	repo := NewProductRepository()
	seedProducts(t, repo)

	_, err := repo.UpdateQuantity(context.Background(), []domproduct.Product{
		{ID: "P7", Name: "Ghost", Price: decimal.NewFromInt(1), Quantity: 1},
	})
	assert.ErrorIs(t, err, domproduct.ErrNotFound)
}

func TestOrderRepository(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	o, err := domorder.New("O1", "C1", []domorder.LineItem{
		{ProductID: "P1", Price: decimal.NewFromInt(10), Quantity: 3},
	})
	require.NoError(t, err)

	created, err := repo.Create(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, o.ID, created.ID)

	found, err := repo.FindByID(ctx, "O1")
	require.NoError(t, err)
	assert.Equal(t, o.Items, found.Items)

	_, err = repo.FindByID(ctx, "O2")
	assert.ErrorIs(t, err, domorder.ErrNotFound)
}
