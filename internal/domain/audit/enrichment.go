// Package audit provides utilities for audit field enrichment in domain entities.
package audit

import (
	"context"

	appctx "salesdesk/internal/core/context"
)

// EnrichCreatedBy sets CreatedBy and UpdatedBy fields from the context actor.
// Use in BeforeCreate hooks.
//
// If no actor is in the context, this is a no-op.
func EnrichCreatedBy(ctx context.Context, entity interface{}) error {
	actorID := appctx.GetActorID(ctx)
	if actorID == "" {
		return nil
	}

	switch e := entity.(type) {
	case interface {
		SetCreatedBy(string)
		SetUpdatedBy(string)
	}:
		e.SetCreatedBy(actorID)
		e.SetUpdatedBy(actorID)
	}

	return nil
}

// EnrichUpdatedBy sets only the UpdatedBy field from the context actor.
// Use in BeforeUpdate hooks.
func EnrichUpdatedBy(ctx context.Context, entity interface{}) error {
	actorID := appctx.GetActorID(ctx)
	if actorID == "" {
		return nil
	}

	switch e := entity.(type) {
	case interface{ SetUpdatedBy(string) }:
		e.SetUpdatedBy(actorID)
	}

	return nil
}

// EnrichCreatedByDirect sets creation audit fields directly.
func EnrichCreatedByDirect(ctx context.Context, createdBy, updatedBy *string) {
	actorID := appctx.GetActorID(ctx)
	if actorID != "" && createdBy != nil && updatedBy != nil {
		*createdBy = actorID
		*updatedBy = actorID
	}
}

// EnrichUpdatedByDirect sets the UpdatedBy field directly.
func EnrichUpdatedByDirect(ctx context.Context, updatedBy *string) {
	actorID := appctx.GetActorID(ctx)
	if actorID != "" && updatedBy != nil {
		*updatedBy = actorID
	}
}
