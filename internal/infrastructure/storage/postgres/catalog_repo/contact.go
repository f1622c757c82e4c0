package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/domain/catalogs/contact"
	"salesdesk/internal/infrastructure/storage/postgres"
)

const contactTable = "cat_contacts"

// ContactRepo implements contact.Repository.
type ContactRepo struct {
	*BaseCatalogRepo[*contact.Contact]
}

// NewContactRepo creates a new contact repository.
func NewContactRepo(txm *postgres.TxManager) *ContactRepo {
	return &ContactRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			contactTable,
			postgres.ExtractDBColumns[contact.Contact](),
			func() *contact.Contact { return &contact.Contact{} },
		),
	}
}

// FindByEmail retrieves a contact by email.
func (r *ContactRepo) FindByEmail(ctx context.Context, email string) (*contact.Contact, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("contact", email)
		}
		return nil, err
	}
	return c, nil
}
