// Package contact provides the Contact catalog.
// Contacts are the people reached at an account.
package contact

import (
	"context"
	"regexp"
	"strings"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/entity"
	"salesdesk/internal/core/id"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Contact represents a person associated with an account.
type Contact struct {
	entity.Catalog

	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`

	// AccountID links the contact to its account (nullable)
	AccountID *id.ID `db:"account_id" json:"accountId,omitempty"`

	Title *string `db:"title" json:"title,omitempty"`
	Email *string `db:"email" json:"email,omitempty"`
	Phone *string `db:"phone" json:"phone,omitempty"`

	Comment *string `db:"comment" json:"comment,omitempty"`
}

// NewContact creates a new Contact. The display name is derived from
// first and last name when not set explicitly.
func NewContact(code, firstName, lastName string) *Contact {
	c := &Contact{
		Catalog:   entity.NewCatalog(code, ""),
		FirstName: firstName,
		LastName:  lastName,
	}
	c.Name = c.DisplayName()
	return c
}

// DisplayName returns "First Last" trimmed of extra spaces.
func (c *Contact) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate implements entity.Validatable interface.
func (c *Contact) Validate(ctx context.Context) error {
	if c.Name == "" {
		c.Name = c.DisplayName()
	}

	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.LastName == "" {
		return apperror.NewValidation("last name is required").
			WithDetail("field", "lastName")
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
