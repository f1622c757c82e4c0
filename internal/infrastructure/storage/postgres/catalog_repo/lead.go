package catalog_repo

import (
	"salesdesk/internal/domain/catalogs/lead"
	"salesdesk/internal/infrastructure/storage/postgres"
)

const leadTable = "cat_leads"

// LeadRepo implements lead.Repository.
type LeadRepo struct {
	*BaseCatalogRepo[*lead.Lead]
}

// NewLeadRepo creates a new lead repository.
func NewLeadRepo(txm *postgres.TxManager) *LeadRepo {
	return &LeadRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			leadTable,
			postgres.ExtractDBColumns[lead.Lead](),
			func() *lead.Lead { return &lead.Lead{} },
		),
	}
}
