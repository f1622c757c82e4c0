// Package lead provides the Lead catalog.
// Leads are prospects that have not been converted to accounts yet.
package lead

import (
	"context"
	"regexp"

	"salesdesk/internal/core/apperror"
	"salesdesk/internal/core/entity"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Status tracks the lead through qualification.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusConverted Status = "converted"
	StatusLost      Status = "lost"
)

// Source records where the lead came from.
type Source string

const (
	SourceWeb      Source = "web"
	SourceReferral Source = "referral"
	SourceCampaign Source = "campaign"
	SourceOther    Source = "other"
)

// Lead represents a sales prospect.
type Lead struct {
	entity.Catalog

	Status Status `db:"status" json:"status"`
	Source Source `db:"source" json:"source,omitempty"`

	Company *string `db:"company" json:"company,omitempty"`
	Email   *string `db:"email" json:"email,omitempty"`
	Phone   *string `db:"phone" json:"phone,omitempty"`

	Comment *string `db:"comment" json:"comment,omitempty"`
}

// NewLead creates a new Lead in status "new".
func NewLead(code, name string) *Lead {
	return &Lead{
		Catalog: entity.NewCatalog(code, name),
		Status:  StatusNew,
	}
}

// Validate implements entity.Validatable interface.
func (l *Lead) Validate(ctx context.Context) error {
	if err := l.Catalog.Validate(ctx); err != nil {
		return err
	}

	if l.Status == "" {
		l.Status = StatusNew
	}
	if !isValidStatus(l.Status) {
		return apperror.NewValidation("invalid lead status").
			WithDetail("field", "status").
			WithDetail("value", string(l.Status))
	}

	if l.Source != "" && !isValidSource(l.Source) {
		return apperror.NewValidation("invalid lead source").
			WithDetail("field", "source").
			WithDetail("value", string(l.Source))
	}

	if l.Email != nil && *l.Email != "" && !emailRE.MatchString(*l.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}

// IsConverted returns true when the lead became a customer.
func (l *Lead) IsConverted() bool {
	return l.Status == StatusConverted
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost:
		return true
	}
	return false
}

func isValidSource(s Source) bool {
	switch s {
	case SourceWeb, SourceReferral, SourceCampaign, SourceOther:
		return true
	}
	return false
}
