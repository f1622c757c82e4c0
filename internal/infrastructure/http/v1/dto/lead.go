package dto

import (
	"salesdesk/internal/domain/catalogs/lead"
)

// --- Request DTOs ---

// CreateLeadRequest represents a request to create a lead.
type CreateLeadRequest struct {
	Code    string  `json:"code"`
	Name    string  `json:"name" binding:"required"`
	Source  string  `json:"source,omitempty"`
	Company *string `json:"company,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateLeadRequest) ToEntity() *lead.Lead {
	l := lead.NewLead(r.Code, r.Name)
	l.Source = lead.Source(r.Source)
	l.Company = r.Company
	l.Email = r.Email
	l.Phone = r.Phone
	l.Comment = r.Comment
	return l
}

// UpdateLeadRequest represents a request to update a lead.
// Status changes go through the dedicated status endpoint.
type UpdateLeadRequest struct {
	Name    *string `json:"name,omitempty"`
	Source  *string `json:"source,omitempty"`
	Company *string `json:"company,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Comment *string `json:"comment,omitempty"`
	Version int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateLeadRequest) ApplyTo(l *lead.Lead) {
	if r.Name != nil {
		l.Name = *r.Name
	}
	if r.Source != nil {
		l.Source = lead.Source(*r.Source)
	}
	if r.Company != nil {
		l.Company = r.Company
	}
	if r.Email != nil {
		l.Email = r.Email
	}
	if r.Phone != nil {
		l.Phone = r.Phone
	}
	if r.Comment != nil {
		l.Comment = r.Comment
	}
	l.Version = r.Version
}

// UpdateLeadStatusRequest changes the lead lifecycle status.
type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- Response DTOs ---

// LeadResponse represents a lead in API responses.
type LeadResponse struct {
	BaseResponse
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Status  string  `json:"status"`
	Source  string  `json:"source,omitempty"`
	Company *string `json:"company,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// FromLead converts domain entity to response DTO.
func FromLead(l *lead.Lead) *LeadResponse {
	return &LeadResponse{
		BaseResponse: FromBaseCatalog(l.BaseCatalog),
		Code:         l.Code,
		Name:         l.Name,
		Status:       string(l.Status),
		Source:       string(l.Source),
		Company:      l.Company,
		Email:        l.Email,
		Phone:        l.Phone,
		Comment:      l.Comment,
	}
}
