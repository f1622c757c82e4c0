package lead

import (
	"context"
	"strings"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/id"
	"salesdesk/internal/core/tx"
	"salesdesk/internal/domain"
)

// Service provides business logic for the Lead catalog.
type Service struct {
	*domain.CatalogService[*Lead]
	repo Repository
}

// NewService creates a new Lead service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Lead]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "lead",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, l *Lead) error {
	if l.Code == "" {
		l.Code = "LD-" + strings.ToUpper(l.ID.String()[:8])
	}
	return nil
}

// UpdateStatus moves a lead to a new status.
func (s *Service) UpdateStatus(ctx context.Context, leadID id.ID, status Status) (*Lead, error) {
	l, err := s.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if !isValidStatus(status) {
		return nil, apperror.NewValidation("invalid lead status").
			WithDetail("field", "status").
			WithDetail("value", string(status))
	}

	// A converted lead is final.
	if l.Status == StatusConverted && status != StatusConverted {
		return nil, apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"converted lead cannot change status",
		).WithDetail("lead_id", leadID.String())
	}

	l.Status = status
	l.Touch()
	if err := s.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
