package lead

import (
	"salesdesk/internal/domain"
)

// Repository defines the interface for Lead persistence.
type Repository interface {
	domain.CatalogRepository[*Lead]
}
