package customer

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("customer: not found")
	ErrInvalidID    = errors.New("customer: id is required")
	ErrInvalidName  = errors.New("customer: name is required")
	ErrInvalidEmail = errors.New("customer: email is required")
)

type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

func New(id, name, email string) (*Customer, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	if name == "" {
		return nil, ErrInvalidName
	}
	if email == "" {
		return nil, ErrInvalidEmail
	}
	return &Customer{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
