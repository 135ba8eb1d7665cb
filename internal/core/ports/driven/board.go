package driven

import "context"

// ProjectBoard is the remote project board API.
// Implementations translate each method into one query or mutation.
type ProjectBoard interface {
	// FindProjectID resolves an organization project's node ID from its number.
	// Returns an empty string and a nil error when the project does not exist.
	FindProjectID(ctx context.Context, owner string, projectNumber int) (string, error)

	// CreateItem adds the content (issue or pull request node) to the project
	// and returns the new board item's ID.
	CreateItem(ctx context.Context, projectID, contentID string) (string, error)

	// FindProjectItemsForIssueNumber lists the IDs of every board item linked
	// to the issue, across all projects visible to the caller.
	FindProjectItemsForIssueNumber(ctx context.Context, owner, repo string, issueNumber int) ([]string, error)

	// RemoveItem deletes a board item and returns the confirmed deleted ID.
	RemoveItem(ctx context.Context, projectID, itemID string) (string, error)
}
