package postgres

import (
	"context"
	"database/sql"
	"errors"

	domain "gomart/internal/domain/customer"
)

// CustomerRepository persists customers to PostgreSQL.
type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (id, name, email, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Email, c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, created_at FROM customers WHERE id = $1`, id))
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, created_at FROM customers WHERE email = $1`, email))
}

func (r *CustomerRepository) scanOne(row *sql.Row) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
