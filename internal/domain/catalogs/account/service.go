package account

import (
	"context"
	"strings"

	"salesdesk/internal/core/tx"
	"salesdesk/internal/domain"
)

// Service provides business logic for the Account catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Account]
	repo Repository
}

// NewService creates a new Account service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Account]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "account",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// prepareForCreate derives a code when none was provided. The code is
// a short, stable handle built from the entity ID.
func (s *Service) prepareForCreate(ctx context.Context, a *Account) error {
	if a.Code == "" {
		a.Code = "AC-" + strings.ToUpper(a.ID.String()[:8])
	}
	return nil
}
