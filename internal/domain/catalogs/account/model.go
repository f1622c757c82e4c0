// Package account provides the Account catalog.
// Accounts represent the companies a sale is made to.
package account

import (
	"context"
	"regexp"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/entity"
)

var (
	emailRE   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	websiteRE = regexp.MustCompile(`^(https?://)?[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}(/.*)?$`)
)

// Industry is a free classification of the account's business.
type Industry string

// Account represents a customer company.
type Account struct {
	entity.Catalog

	Industry Industry `db:"industry" json:"industry,omitempty"`

	Website *string `db:"website" json:"website,omitempty"`
	Phone   *string `db:"phone" json:"phone,omitempty"`
	Email   *string `db:"email" json:"email,omitempty"`

	// BillingAddress is a free-form postal address
	BillingAddress *string `db:"billing_address" json:"billingAddress,omitempty"`

	// ShippingAddress is a free-form postal address
	ShippingAddress *string `db:"shipping_address" json:"shippingAddress,omitempty"`

	Comment *string `db:"comment" json:"comment,omitempty"`
}

// NewAccount creates a new Account with required fields.
func NewAccount(code, name string) *Account {
	return &Account{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (a *Account) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	if a.Email != nil && *a.Email != "" && !emailRE.MatchString(*a.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	if a.Website != nil && *a.Website != "" && !websiteRE.MatchString(*a.Website) {
		return apperror.NewValidation("invalid website format").
			WithDetail("field", "website")
	}

	return nil
}
