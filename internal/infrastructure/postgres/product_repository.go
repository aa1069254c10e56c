package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "gomart/internal/domain/product"

	"github.com/lib/pq"
)

// ProductRepository persists catalog entries to PostgreSQL.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, name, price, quantity, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.Price, p.Quantity, p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, price, quantity, updated_at FROM products WHERE name = $1`, name,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) FindAllByID(ctx context.Context, selections []domain.Selection) ([]domain.Product, error) {
	ids := make([]string, 0, len(selections))
	for _, sel := range selections {
		ids = append(ids, sel.ID)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, price, quantity, updated_at FROM products WHERE id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// UpdateQuantity writes the batch in a single transaction so a partial
// failure leaves no half-updated stock.
func (r *ProductRepository) UpdateQuantity(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		res, err := tx.ExecContext(ctx,
			`UPDATE products SET quantity = $2, name = $3, price = $4, updated_at = $5 WHERE id = $1`,
			p.ID, p.Quantity, p.Name, p.Price, now,
		)
		if err != nil {
			return nil, err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil, domain.ErrNotFound
		}
		p.UpdatedAt = now
		out = append(out, p)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}
