package customers

import (
	"context"
	"errors"
	"fmt"

	"gomart/internal/domain/customer"
	"gomart/internal/observability"
	"gomart/internal/observability/logctx"
)

var ErrEmailTaken = errors.New("customers: email already in use")

// Service registers customers. The checkout flow only reads them; this is the
// write side.
type Service struct {
	repo  customer.Repository
	idGen IDGenerator
	log   observability.Logger
}

type IDGenerator interface {
	NewID() string
}

func NewService(repo customer.Repository, idGen IDGenerator, tel observability.Observability) *Service {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Service{
		repo:  repo,
		idGen: idGen,
		log:   tel.Logger().With(observability.F("service", "customer-service")),
	}
}

func (s *Service) Create(ctx context.Context, name, email string) (*customer.Customer, error) {
	logger := logctx.FromOr(ctx, s.log)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, customer.ErrNotFound) {
		return nil, fmt.Errorf("customers: lookup by email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	entity, err := customer.New(s.idGen.NewID(), name, email)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("customers: create: %w", err)
	}

	logger.Info("customer_created", observability.F("customer_id", created.ID))
	return created, nil
}
