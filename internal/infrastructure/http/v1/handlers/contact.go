package handlers

import (
	"salesdesk/internal/domain/catalogs/contact"
	"salesdesk/internal/infrastructure/http/v1/dto"
)

// ContactHTTPHandler is the generic catalog handler specialized for contacts.
type ContactHTTPHandler = CatalogHandler[
	*contact.Contact,
	dto.CreateContactRequest,
	dto.UpdateContactRequest,
]

// NewContactHandler wires the contact service into the generic catalog handler.
func NewContactHandler(base *BaseHandler, service *contact.Service) *ContactHTTPHandler {
	config := CatalogHandlerConfig[
		*contact.Contact,
		dto.CreateContactRequest,
		dto.UpdateContactRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "contact",
		MapCreateDTO: func(req dto.CreateContactRequest) *contact.Contact {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateContactRequest, existing *contact.Contact) *contact.Contact {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *contact.Contact) any {
			return dto.FromContact(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
