package catalog

import (
	"context"
	"errors"
	"fmt"

	"gomart/internal/domain/product"
	"gomart/internal/observability"
	"gomart/internal/observability/logctx"

	"github.com/shopspring/decimal"
)

var ErrNameTaken = errors.New("catalog: product name already in use")

// Service registers catalog entries.
type Service struct {
	repo  product.Repository
	idGen IDGenerator
	log   observability.Logger
}

type IDGenerator interface {
	NewID() string
}

func NewService(repo product.Repository, idGen IDGenerator, tel observability.Observability) *Service {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Service{
		repo:  repo,
		idGen: idGen,
		log:   tel.Logger().With(observability.F("service", "catalog-service")),
	}
}

func (s *Service) Create(ctx context.Context, name string, price decimal.Decimal, quantity int) (*product.Product, error) {
	logger := logctx.FromOr(ctx, s.log)

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, product.ErrNotFound) {
		return nil, fmt.Errorf("catalog: lookup by name: %w", err)
	}
	if existing != nil {
		return nil, ErrNameTaken
	}

	entity, err := product.New(s.idGen.NewID(), name, price, quantity)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("catalog: create: %w", err)
	}

	logger.Info("product_created",
		observability.F("product_id", created.ID),
		observability.F("quantity", created.Quantity),
	)
	return created, nil
}
