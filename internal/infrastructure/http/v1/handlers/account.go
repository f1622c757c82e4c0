package handlers

import (
	"salesdesk/internal/domain/catalogs/account"
	"salesdesk/internal/infrastructure/http/v1/dto"
)

// AccountHTTPHandler is the generic catalog handler specialized for accounts.
type AccountHTTPHandler = CatalogHandler[
	*account.Account,
	dto.CreateAccountRequest,
	dto.UpdateAccountRequest,
]

// NewAccountHandler wires the account service into the generic catalog handler.
func NewAccountHandler(base *BaseHandler, service *account.Service) *AccountHTTPHandler {
	config := CatalogHandlerConfig[
		*account.Account,
		dto.CreateAccountRequest,
		dto.UpdateAccountRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "account",
		MapCreateDTO: func(req dto.CreateAccountRequest) *account.Account {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateAccountRequest, existing *account.Account) *account.Account {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *account.Account) any {
			return dto.FromAccount(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
