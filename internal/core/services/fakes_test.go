package services

import (
	"context"

	"github.com/custodia-labs/boardsync/internal/core/domain"
	"github.com/custodia-labs/boardsync/internal/core/ports/driven"
	"github.com/custodia-labs/boardsync/internal/core/ports/driving"
)

var (
	_ driven.ProjectBoard    = (*fakeBoard)(nil)
	_ driven.EventNormaliser = (*fakeNormaliser)(nil)
	_ driving.ItemLifecycle  = (*fakeItems)(nil)
)

type findProjectCall struct {
	owner         string
	projectNumber int
}

type findItemsCall struct {
	owner       string
	repo        string
	issueNumber int
}

type itemCall struct {
	projectID string
	id        string
}

// fakeBoard records every call and answers from its fields.
type fakeBoard struct {
	projectID   string
	findErr     error
	createdID   string
	createErr   error
	itemIDs     []string
	findItemErr error
	removeErr   map[string]error

	findProjectCalls []findProjectCall
	createCalls      []itemCall
	findItemsCalls   []findItemsCall
	removeCalls      []itemCall
}

func (b *fakeBoard) FindProjectID(_ context.Context, owner string, projectNumber int) (string, error) {
	b.findProjectCalls = append(b.findProjectCalls, findProjectCall{owner: owner, projectNumber: projectNumber})
	return b.projectID, b.findErr
}

func (b *fakeBoard) CreateItem(_ context.Context, projectID, contentID string) (string, error) {
	b.createCalls = append(b.createCalls, itemCall{projectID: projectID, id: contentID})
	return b.createdID, b.createErr
}

func (b *fakeBoard) FindProjectItemsForIssueNumber(
	_ context.Context, owner, repo string, issueNumber int,
) ([]string, error) {
	b.findItemsCalls = append(b.findItemsCalls, findItemsCall{owner: owner, repo: repo, issueNumber: issueNumber})
	return b.itemIDs, b.findItemErr
}

func (b *fakeBoard) RemoveItem(_ context.Context, projectID, itemID string) (string, error) {
	b.removeCalls = append(b.removeCalls, itemCall{projectID: projectID, id: itemID})
	if err := b.removeErr[itemID]; err != nil {
		return "", err
	}
	return itemID, nil
}

// fakeNormaliser returns a fixed context.
type fakeNormaliser struct {
	item  domain.ItemContext
	err   error
	calls int
}

func (n *fakeNormaliser) Normalise(_ domain.Event) (domain.ItemContext, error) {
	n.calls++
	return n.item, n.err
}

type lifecycleCall struct {
	item          domain.ItemContext
	projectNumber int
}

// fakeItems records lifecycle invocations.
type fakeItems struct {
	addErr    error
	removeErr error

	addCalls    []lifecycleCall
	removeCalls []lifecycleCall
}

func (f *fakeItems) AddItemToProject(_ context.Context, item domain.ItemContext, projectNumber int) (string, error) {
	f.addCalls = append(f.addCalls, lifecycleCall{item: item, projectNumber: projectNumber})
	if f.addErr != nil {
		return "", f.addErr
	}
	return "item-for-project", nil
}

func (f *fakeItems) RemoveItemsFromProject(
	_ context.Context, item domain.ItemContext, projectNumber int,
) ([]string, error) {
	f.removeCalls = append(f.removeCalls, lifecycleCall{item: item, projectNumber: projectNumber})
	if f.removeErr != nil {
		return nil, f.removeErr
	}
	return []string{"deleted"}, nil
}

var mockIssueContext = domain.ItemContext{
	Owner:      "mocked_owner",
	Repo:       "repo1",
	Label:      "label1",
	ItemType:   domain.ItemTypeIssue,
	ItemNumber: 123,
	ItemID:     "mocked_issue_node_id",
}

var mockPRContext = domain.ItemContext{
	Owner:      "mocked_owner",
	Repo:       "repo1",
	Label:      "label1",
	ItemType:   domain.ItemTypePullRequest,
	ItemNumber: 543,
	ItemID:     "mocked_pr_node_id",
}

var mockConfig = []domain.ProjectMapping{
	{Label: "label1", ProjectNumber: 567},
	{Label: "label2", ProjectNumber: 462},
}
