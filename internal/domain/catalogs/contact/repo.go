package contact

import (
	"context"

	"salesdesk/internal/domain"
)

// Repository defines the interface for Contact persistence.
type Repository interface {
	domain.CatalogRepository[*Contact]

	// FindByEmail retrieves a contact by email.
	FindByEmail(ctx context.Context, email string) (*Contact, error)
}
