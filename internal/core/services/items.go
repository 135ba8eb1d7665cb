package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/boardsync/internal/core/domain"
	"github.com/custodia-labs/boardsync/internal/core/ports/driven"
	"github.com/custodia-labs/boardsync/internal/core/ports/driving"
	"github.com/custodia-labs/boardsync/internal/logger"
)

// Ensure ItemService implements the interface.
var _ driving.ItemLifecycle = (*ItemService)(nil)

// ItemService adds and removes board items for label events.
// Every call re-resolves the project; nothing is cached between calls.
type ItemService struct {
	board driven.ProjectBoard
}

// NewItemService creates an item service backed by the given board.
func NewItemService(board driven.ProjectBoard) *ItemService {
	return &ItemService{board: board}
}

// AddItemToProject creates a board item for the event's issue or pull request.
// No existence check is made: adding the same content twice creates two items.
func (s *ItemService) AddItemToProject(
	ctx context.Context, item domain.ItemContext, projectNumber int,
) (string, error) {
	if projectNumber == 0 {
		return "", fmt.Errorf("%w: projectNumber is required", domain.ErrInvalidInput)
	}
	if item.ItemID == "" {
		return "", fmt.Errorf("%w: itemId is required", domain.ErrInvalidInput)
	}

	project, err := s.resolveProject(ctx, item.Owner, projectNumber)
	if err != nil {
		return "", fmt.Errorf("add item to project: %w", err)
	}

	logger.Info("Creating a new item for %s number %d, ID %s in project [%d], owner %q",
		item.ItemType, item.ItemNumber, item.ItemID, project.Number, item.Owner)

	itemID, err := s.board.CreateItem(ctx, project.ID, item.ItemID)
	if err != nil {
		return "", err
	}

	logger.Debug("Created item %s in project %s", itemID, project.ID)
	return itemID, nil
}

// RemoveItemsFromProject deletes every board item linked to the event's issue.
// The board API cannot look up an item by its content ID, so all items for the
// issue number are discovered and deleted in order. The first failed deletion
// fails the call; earlier deletions stay deleted.
func (s *ItemService) RemoveItemsFromProject(
	ctx context.Context, item domain.ItemContext, projectNumber int,
) ([]string, error) {
	if projectNumber == 0 {
		return nil, fmt.Errorf("%w: projectNumber is required", domain.ErrInvalidInput)
	}
	if item.ItemNumber == 0 {
		return nil, fmt.Errorf("%w: itemNumber is required", domain.ErrInvalidInput)
	}
	if item.ItemType != domain.ItemTypeIssue {
		return nil, fmt.Errorf("%w: only issues can be removed from projects, got %q",
			domain.ErrUnsupportedType, item.ItemType)
	}

	project, err := s.resolveProject(ctx, item.Owner, projectNumber)
	if err != nil {
		return nil, fmt.Errorf("remove items from project: %w", err)
	}

	itemIDs, err := s.board.FindProjectItemsForIssueNumber(ctx, item.Owner, item.Repo, item.ItemNumber)
	if err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		logger.Info("No project items found for %s number %d", item.ItemType, item.ItemNumber)
		return []string{}, nil
	}

	deleted := make([]string, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		logger.Info("Removing item %s for %s number %d from project [%d], owner %q",
			itemID, item.ItemType, item.ItemNumber, project.Number, item.Owner)

		deletedID, err := s.board.RemoveItem(ctx, project.ID, itemID)
		if err != nil {
			return deleted, err
		}
		deleted = append(deleted, deletedID)
	}

	return deleted, nil
}

// resolveProject looks up the project's node ID, treating a missing project as an error.
func (s *ItemService) resolveProject(
	ctx context.Context, owner string, projectNumber int,
) (domain.ProjectIdentity, error) {
	projectID, err := s.board.FindProjectID(ctx, owner, projectNumber)
	if err != nil {
		return domain.ProjectIdentity{}, err
	}
	if projectID == "" {
		return domain.ProjectIdentity{}, fmt.Errorf("%w: projectNumber %d", domain.ErrNotFound, projectNumber)
	}
	return domain.ProjectIdentity{Number: projectNumber, ID: projectID}, nil
}
