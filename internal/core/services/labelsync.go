package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/boardsync/internal/core/domain"
	"github.com/custodia-labs/boardsync/internal/core/ports/driven"
	"github.com/custodia-labs/boardsync/internal/core/ports/driving"
	"github.com/custodia-labs/boardsync/internal/logger"
)

// Ensure LabelSyncService implements the interface.
var _ driving.LabelSync = (*LabelSyncService)(nil)

// LabelSyncService dispatches one lifecycle operation per matching mapping row.
// Rows are processed sequentially and in order so that board mutations and
// failures are attributable to a single row.
type LabelSyncService struct {
	normaliser driven.EventNormaliser
	items      driving.ItemLifecycle
}

// NewLabelSyncService creates a label sync service.
func NewLabelSyncService(normaliser driven.EventNormaliser, items driving.ItemLifecycle) *LabelSyncService {
	return &LabelSyncService{
		normaliser: normaliser,
		items:      items,
	}
}

// Run applies the event to every mapping row whose label matches.
// Actions other than labeled and unlabeled are a no-op. The first error
// stops processing and is returned as a *domain.RunFailure; no row is retried.
func (s *LabelSyncService) Run(
	ctx context.Context, event domain.Event, mappings []domain.ProjectMapping,
) (*domain.RunResult, error) {
	result := &domain.RunResult{ID: uuid.New().String()}

	logger.Section("Label Sync " + result.ID)
	logger.Debug("Using config: %+v", mappings)

	item, err := s.normaliser.Normalise(event)
	if err != nil {
		return result, &domain.RunFailure{RunID: result.ID, Err: err}
	}
	result.Context = item
	logger.Debug("Context: %+v", item)

	if err := s.dispatch(ctx, item, mappings, result); err != nil {
		return result, &domain.RunFailure{RunID: result.ID, Context: item, Err: err}
	}

	logger.Info("Run %s complete: %d matching rows", result.ID, result.Matched())
	return result, nil
}

func (s *LabelSyncService) dispatch(
	ctx context.Context, item domain.ItemContext, mappings []domain.ProjectMapping, result *domain.RunResult,
) error {
	switch item.Action {
	case domain.ActionLabeled:
		for _, m := range mappings {
			if !m.Matches(item.Label) {
				continue
			}
			itemID, err := s.items.AddItemToProject(ctx, item, m.ProjectNumber)
			if err != nil {
				return fmt.Errorf("label %q, project %d: %w", m.Label, m.ProjectNumber, err)
			}
			result.Added = append(result.Added, domain.AddedItem{ProjectNumber: m.ProjectNumber, ItemID: itemID})
		}

	case domain.ActionUnlabeled:
		for _, m := range mappings {
			if !m.Matches(item.Label) {
				continue
			}
			deleted, err := s.items.RemoveItemsFromProject(ctx, item, m.ProjectNumber)
			if err != nil {
				return fmt.Errorf("label %q, project %d: %w", m.Label, m.ProjectNumber, err)
			}
			result.Removed = append(result.Removed, domain.RemovedItems{ProjectNumber: m.ProjectNumber, ItemIDs: deleted})
		}

	default:
		logger.Debug("Ignoring action %q", item.Action)
	}
	return nil
}
