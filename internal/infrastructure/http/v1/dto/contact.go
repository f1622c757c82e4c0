package dto

import (
	"salesdesk/internal/core/id"
	"salesdesk/internal/domain/catalogs/contact"
)

// --- Request DTOs ---

// CreateContactRequest represents a request to create a contact.
type CreateContactRequest struct {
	Code      string  `json:"code"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName" binding:"required"`
	AccountID *string `json:"accountId,omitempty"`
	Title     *string `json:"title,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Comment   *string `json:"comment,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateContactRequest) ToEntity() *contact.Contact {
	ct := contact.NewContact(r.Code, r.FirstName, r.LastName)
	if r.AccountID != nil {
		if parsed, err := id.Parse(*r.AccountID); err == nil {
			ct.AccountID = &parsed
		}
	}
	ct.Title = r.Title
	ct.Email = r.Email
	ct.Phone = r.Phone
	ct.Comment = r.Comment
	return ct
}

// UpdateContactRequest represents a request to update a contact.
type UpdateContactRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	AccountID *string `json:"accountId,omitempty"`
	Title     *string `json:"title,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Comment   *string `json:"comment,omitempty"`
	Version   int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateContactRequest) ApplyTo(ct *contact.Contact) {
	if r.FirstName != nil {
		ct.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		ct.LastName = *r.LastName
	}
	if r.AccountID != nil {
		if *r.AccountID == "" {
			ct.AccountID = nil
		} else if parsed, err := id.Parse(*r.AccountID); err == nil {
			ct.AccountID = &parsed
		}
	}
	if r.Title != nil {
		ct.Title = r.Title
	}
	if r.Email != nil {
		ct.Email = r.Email
	}
	if r.Phone != nil {
		ct.Phone = r.Phone
	}
	if r.Comment != nil {
		ct.Comment = r.Comment
	}
	ct.Version = r.Version
}

// --- Response DTOs ---

// ContactResponse represents a contact in API responses.
type ContactResponse struct {
	BaseResponse
	Code      string  `json:"code"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Name      string  `json:"name"`
	AccountID *string `json:"accountId,omitempty"`
	Title     *string `json:"title,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Comment   *string `json:"comment,omitempty"`
}

// FromContact converts domain entity to response DTO.
func FromContact(ct *contact.Contact) *ContactResponse {
	resp := &ContactResponse{
		BaseResponse: FromBaseCatalog(ct.BaseCatalog),
		Code:         ct.Code,
		FirstName:    ct.FirstName,
		LastName:     ct.LastName,
		Name:         ct.DisplayName(),
		Title:        ct.Title,
		Email:        ct.Email,
		Phone:        ct.Phone,
		Comment:      ct.Comment,
	}
	if ct.AccountID != nil {
		s := ct.AccountID.String()
		resp.AccountID = &s
	}
	return resp
}
