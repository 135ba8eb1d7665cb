package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/boardsync/internal/core/domain"
	"github.com/custodia-labs/boardsync/internal/core/ports/driven"
)

// Ensure Client implements the ProjectBoard interface.
var _ driven.ProjectBoard = (*Client)(nil)

// MaxProjectItemsPerIssue is the page size of the project items lookup.
// A full page is treated as overflow because more items may exist.
const MaxProjectItemsPerIssue = 50

// Project board operations. Documents are sent verbatim.
var (
	findProjectIDOp = Operation{
		Name: "findProjectId",
		Document: `query findProjectId($owner: String!, $projectNumber: Int!) {
    organization(login: $owner) {
        projectV2(number: $projectNumber) {
            id
        }
    }
}`,
	}

	createItemOp = Operation{
		Name: "createItem",
		Document: `mutation createItem($projectId: ID!, $contentId: ID!) {
    addProjectV2ItemById(input: {projectId: $projectId contentId: $contentId}) {
        item {
            id
        }
    }
}`,
	}

	findProjectItemsForIssueNumberOp = Operation{
		Name: "findProjectItemsForIssueNumber",
		Document: `query findProjectItemsForIssueNumber($owner: String!, $repo: String!, $issueNumber:Int!) {
    viewer {
        organization(login:$owner) {
            repository(name:$repo) {
                issue(number:$issueNumber) {
                    projectItems(first:50) {
                        nodes {
                            id
                        }
                    }
                }
            }
        }
    }
}`,
	}

	removeItemOp = Operation{
		Name: "deleteItem",
		Document: `mutation deleteItem($projectId: ID!, $itemId: ID!) {
    deleteProjectV2Item(input: {
        projectId: $projectId
        itemId: $itemId
    }) {
        deletedItemId
    }
}`,
	}
)

type node struct {
	ID string `json:"id"`
}

type findProjectIDData struct {
	Organization *struct {
		ProjectV2 *node `json:"projectV2"`
	} `json:"organization"`
}

type createItemData struct {
	AddProjectV2ItemByID *struct {
		Item *node `json:"item"`
	} `json:"addProjectV2ItemById"`
}

type findProjectItemsData struct {
	Viewer *struct {
		Organization *struct {
			Repository *struct {
				Issue *struct {
					ProjectItems *struct {
						Nodes []node `json:"nodes"`
					} `json:"projectItems"`
				} `json:"issue"`
			} `json:"repository"`
		} `json:"organization"`
	} `json:"viewer"`
}

type removeItemData struct {
	DeleteProjectV2Item *struct {
		DeletedItemID string `json:"deletedItemId"`
	} `json:"deleteProjectV2Item"`
}

// FindProjectID resolves an organization project's node ID from its number.
// A missing organization or project yields "" and a nil error.
func (c *Client) FindProjectID(ctx context.Context, owner string, projectNumber int) (string, error) {
	var data findProjectIDData
	err := c.GraphQL(ctx, findProjectIDOp, map[string]any{
		"owner":         owner,
		"projectNumber": projectNumber,
	}, &data)
	if err != nil {
		// GitHub reports an unknown login or project number as a NOT_FOUND
		// GraphQL error alongside null data. An HTTP 404 stays an error since
		// it points at a wrong API URL rather than a missing project.
		var gqlErr *GraphQLError
		if errors.As(err, &gqlErr) && IsNotFound(gqlErr) {
			return "", nil
		}
		return "", fmt.Errorf("query project ID for project number %d: %w", projectNumber, err)
	}

	if data.Organization == nil || data.Organization.ProjectV2 == nil {
		return "", nil
	}
	return data.Organization.ProjectV2.ID, nil
}

// CreateItem adds the content to the project and returns the new item's ID.
func (c *Client) CreateItem(ctx context.Context, projectID, contentID string) (string, error) {
	var data createItemData
	err := c.GraphQL(ctx, createItemOp, map[string]any{
		"projectId": projectID,
		"contentId": contentID,
	}, &data)
	if err != nil {
		return "", fmt.Errorf("create item for item ID [%s] in project %s: %w", contentID, projectID, err)
	}

	if data.AddProjectV2ItemByID == nil || data.AddProjectV2ItemByID.Item == nil {
		return "", fmt.Errorf("create item for item ID [%s] in project %s: %w", contentID, projectID, ErrEmptyResponse)
	}
	return data.AddProjectV2ItemByID.Item.ID, nil
}

// FindProjectItemsForIssueNumber lists the board items linked to an issue.
// An issue with MaxProjectItemsPerIssue or more items fails with
// domain.ErrTooManyItems instead of returning a truncated list.
func (c *Client) FindProjectItemsForIssueNumber(
	ctx context.Context, owner, repo string, issueNumber int,
) ([]string, error) {
	var data findProjectItemsData
	err := c.GraphQL(ctx, findProjectItemsForIssueNumberOp, map[string]any{
		"owner":       owner,
		"repo":        repo,
		"issueNumber": issueNumber,
	}, &data)
	if err != nil {
		return nil, fmt.Errorf("find project items for issue number %d in %s/%s: %w", issueNumber, owner, repo, err)
	}

	var nodes []node
	if v := data.Viewer; v != nil && v.Organization != nil && v.Organization.Repository != nil &&
		v.Organization.Repository.Issue != nil && v.Organization.Repository.Issue.ProjectItems != nil {
		nodes = v.Organization.Repository.Issue.ProjectItems.Nodes
	}

	if len(nodes) >= MaxProjectItemsPerIssue {
		return nil, fmt.Errorf("%w: issue number %d in %s/%s has %d or more project items",
			domain.ErrTooManyItems, issueNumber, owner, repo, MaxProjectItemsPerIssue)
	}

	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	return ids, nil
}

// RemoveItem deletes a board item and returns the confirmed deleted ID.
func (c *Client) RemoveItem(ctx context.Context, projectID, itemID string) (string, error) {
	var data removeItemData
	err := c.GraphQL(ctx, removeItemOp, map[string]any{
		"projectId": projectID,
		"itemId":    itemID,
	}, &data)
	if err != nil {
		return "", fmt.Errorf("remove item %s from project %s: %w", itemID, projectID, err)
	}

	if data.DeleteProjectV2Item == nil {
		return "", fmt.Errorf("remove item %s from project %s: %w", itemID, projectID, ErrEmptyResponse)
	}
	return data.DeleteProjectV2Item.DeletedItemID, nil
}
