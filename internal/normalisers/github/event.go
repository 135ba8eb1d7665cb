package github

import (
	"encoding/json"
	"fmt"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/boardsync/internal/core/domain"
	"github.com/custodia-labs/boardsync/internal/core/ports/driven"
)

// Ensure EventNormaliser implements the interface.
var _ driven.EventNormaliser = (*EventNormaliser)(nil)

// Payload is the subset of an issues or pull_request webhook body that label
// events care about. Every field may be absent.
type Payload struct {
	Action      *string         `json:"action,omitempty"`
	Repository  *gh.Repository  `json:"repository,omitempty"`
	Label       *gh.Label       `json:"label,omitempty"`
	Issue       *gh.Issue       `json:"issue,omitempty"`
	PullRequest *gh.PullRequest `json:"pull_request,omitempty"`
}

// GetAction returns the Action field if it's non-nil, zero value otherwise.
func (p *Payload) GetAction() string {
	if p == nil || p.Action == nil {
		return ""
	}
	return *p.Action
}

// GetRepository returns the Repository field.
func (p *Payload) GetRepository() *gh.Repository {
	if p == nil {
		return nil
	}
	return p.Repository
}

// GetLabel returns the Label field.
func (p *Payload) GetLabel() *gh.Label {
	if p == nil {
		return nil
	}
	return p.Label
}

// GetIssue returns the Issue field.
func (p *Payload) GetIssue() *gh.Issue {
	if p == nil {
		return nil
	}
	return p.Issue
}

// GetPullRequest returns the PullRequest field.
func (p *Payload) GetPullRequest() *gh.PullRequest {
	if p == nil {
		return nil
	}
	return p.PullRequest
}

// DecodePayload parses a raw webhook body.
func DecodePayload(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &p, nil
}

// Normalise extracts the label event facts from a decoded payload.
// It never fails: absent substructures leave the matching fields empty.
// The go-github getters are nil-safe, so a nil payload is accepted too.
func Normalise(kind domain.EventKind, p *Payload) domain.ItemContext {
	item := domain.ItemContext{
		Owner:  p.GetRepository().GetOwner().GetLogin(),
		Repo:   p.GetRepository().GetName(),
		Label:  p.GetLabel().GetName(),
		Action: domain.Action(p.GetAction()),
	}

	switch kind {
	case domain.EventIssues:
		if issue := p.GetIssue(); issue != nil {
			item.ItemType = domain.ItemTypeIssue
			item.ItemNumber = issue.GetNumber()
			item.ItemID = issue.GetNodeID()
		}
	case domain.EventPullRequest, domain.EventPullRequestTarget:
		if pr := p.GetPullRequest(); pr != nil {
			item.ItemType = domain.ItemTypePullRequest
			item.ItemNumber = pr.GetNumber()
			item.ItemID = pr.GetNodeID()
		}
	}

	return item
}

// EventNormaliser adapts DecodePayload and Normalise to the driven port.
type EventNormaliser struct{}

// NewEventNormaliser creates a webhook event normaliser.
func NewEventNormaliser() *EventNormaliser {
	return &EventNormaliser{}
}

// Normalise decodes the event payload and normalises it.
// An empty payload normalises to an empty context.
func (n *EventNormaliser) Normalise(event domain.Event) (domain.ItemContext, error) {
	if len(event.Payload) == 0 {
		return Normalise(event.Kind, nil), nil
	}

	p, err := DecodePayload(event.Payload)
	if err != nil {
		return domain.ItemContext{}, err
	}
	return Normalise(event.Kind, p), nil
}
