package dto

import (
	"salesdesk/internal/domain/catalogs/account"
)

// --- Request DTOs ---

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Code            string  `json:"code"`
	Name            string  `json:"name" binding:"required"`
	Industry        string  `json:"industry,omitempty"`
	Website         *string `json:"website,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty"`
	BillingAddress  *string `json:"billingAddress,omitempty"`
	ShippingAddress *string `json:"shippingAddress,omitempty"`
	Comment         *string `json:"comment,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateAccountRequest) ToEntity() *account.Account {
	a := account.NewAccount(r.Code, r.Name)
	a.Industry = account.Industry(r.Industry)
	a.Website = r.Website
	a.Phone = r.Phone
	a.Email = r.Email
	a.BillingAddress = r.BillingAddress
	a.ShippingAddress = r.ShippingAddress
	a.Comment = r.Comment
	return a
}

// UpdateAccountRequest represents a request to update an account.
type UpdateAccountRequest struct {
	Name            *string `json:"name,omitempty"`
	Industry        *string `json:"industry,omitempty"`
	Website         *string `json:"website,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty"`
	BillingAddress  *string `json:"billingAddress,omitempty"`
	ShippingAddress *string `json:"shippingAddress,omitempty"`
	Comment         *string `json:"comment,omitempty"`
	Version         int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateAccountRequest) ApplyTo(a *account.Account) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Industry != nil {
		a.Industry = account.Industry(*r.Industry)
	}
	if r.Website != nil {
		a.Website = r.Website
	}
	if r.Phone != nil {
		a.Phone = r.Phone
	}
	if r.Email != nil {
		a.Email = r.Email
	}
	if r.BillingAddress != nil {
		a.BillingAddress = r.BillingAddress
	}
	if r.ShippingAddress != nil {
		a.ShippingAddress = r.ShippingAddress
	}
	if r.Comment != nil {
		a.Comment = r.Comment
	}
	a.Version = r.Version
}

// --- Response DTOs ---

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	BaseResponse
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Industry        string  `json:"industry,omitempty"`
	Website         *string `json:"website,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty"`
	BillingAddress  *string `json:"billingAddress,omitempty"`
	ShippingAddress *string `json:"shippingAddress,omitempty"`
	Comment         *string `json:"comment,omitempty"`
}

// FromAccount converts domain entity to response DTO.
func FromAccount(a *account.Account) *AccountResponse {
	return &AccountResponse{
		BaseResponse:    FromBaseCatalog(a.BaseCatalog),
		Code:            a.Code,
		Name:            a.Name,
		Industry:        string(a.Industry),
		Website:         a.Website,
		Phone:           a.Phone,
		Email:           a.Email,
		BillingAddress:  a.BillingAddress,
		ShippingAddress: a.ShippingAddress,
		Comment:         a.Comment,
	}
}
