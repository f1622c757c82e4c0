package contact

import (
	"context"
	"strings"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/id"
	"salesdesk/internal/core/tx"
	"salesdesk/internal/domain"
)

// Service provides business logic for the Contact catalog.
type Service struct {
	*domain.CatalogService[*Contact]
	repo Repository
}

// NewService creates a new Contact service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Contact]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "contact",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, c *Contact) error {
	if c.Code == "" {
		c.Code = "CT-" + strings.ToUpper(c.ID.String()[:8])
	}
	return s.checkEmailUnique(ctx, c)
}

func (s *Service) prepareForUpdate(ctx context.Context, c *Contact) error {
	return s.checkEmailUnique(ctx, c)
}

// FindByEmail retrieves a contact by email.
func (s *Service) FindByEmail(ctx context.Context, email string) (*Contact, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *Service) checkEmailUnique(ctx context.Context, c *Contact) error {
	if c.Email == nil || *c.Email == "" {
		return nil
	}
	existing, err := s.repo.FindByEmail(ctx, *c.Email)
	if err != nil {
		// Not found is OK; other errors must be propagated.
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID && existing.ID != id.Nil() {
		return apperror.NewConflict("contact with this email already exists").
			WithDetail("email", *c.Email)
	}
	return nil
}
