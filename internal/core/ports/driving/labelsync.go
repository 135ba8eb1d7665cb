package driving

import (
	"context"

	"github.com/custodia-labs/boardsync/internal/core/domain"
)

// LabelSync applies one label event to the configured project boards.
type LabelSync interface {
	// Run normalises the event and adds or removes the item for every
	// mapping row whose label matches. Any failure is returned as a
	// *domain.RunFailure.
	Run(ctx context.Context, event domain.Event, mappings []domain.ProjectMapping) (*domain.RunResult, error)
}

// ItemLifecycle adds and removes board items for a normalised event.
type ItemLifecycle interface {
	// AddItemToProject creates a board item for the event's content and
	// returns its ID.
	AddItemToProject(ctx context.Context, item domain.ItemContext, projectNumber int) (string, error)

	// RemoveItemsFromProject deletes every board item linked to the event's
	// issue and returns the deleted IDs.
	RemoveItemsFromProject(ctx context.Context, item domain.ItemContext, projectNumber int) ([]string, error)
}
