package domain

// EventKind is the webhook event name delivered alongside a payload
// (the X-GitHub-Event header, or GITHUB_EVENT_NAME inside an Action).
type EventKind string

const (
	// EventIssues is delivered for issue activity, including label changes.
	EventIssues EventKind = "issues"

	// EventPullRequest is delivered for pull request activity.
	EventPullRequest EventKind = "pull_request"

	// EventPullRequestTarget carries the pull_request payload in the
	// context of the base repository.
	EventPullRequestTarget EventKind = "pull_request_target"
)

// Event is an undecoded webhook delivery: its kind plus the raw JSON body.
// It is the transport's output before normalisation.
type Event struct {
	// Kind selects how the payload is interpreted.
	Kind EventKind

	// Payload is the raw JSON body of the delivery.
	Payload []byte
}

// Action is the payload's action field.
// Values other than the label actions pass through unchanged.
type Action string

const (
	// ActionLabeled means a label was added to the item.
	ActionLabeled Action = "labeled"

	// ActionUnlabeled means a label was removed from the item.
	ActionUnlabeled Action = "unlabeled"
)

// ItemType identifies what kind of content triggered the event.
type ItemType string

const (
	ItemTypeIssue       ItemType = "Issue"
	ItemTypePullRequest ItemType = "Pull request"
)

// ItemContext holds the normalised facts of one label event.
// ItemType, ItemNumber and ItemID are set together or not at all.
// Empty fields are omitted from the JSON form.
type ItemContext struct {
	// Owner is the organization or user login owning the repository.
	Owner string `json:"owner,omitempty"`

	// Repo is the repository name.
	Repo string `json:"repo,omitempty"`

	// Label is the name of the label that was added or removed.
	Label string `json:"label,omitempty"`

	// Action is the payload action, e.g. labeled.
	Action Action `json:"action,omitempty"`

	// ItemType is Issue or Pull request.
	ItemType ItemType `json:"itemType,omitempty"`

	// ItemNumber is the human-facing issue or pull request number.
	ItemNumber int `json:"itemNumber,omitempty"`

	// ItemID is the content node ID used to create board items.
	ItemID string `json:"itemId,omitempty"`
}

// HasItem reports whether the event carried an issue or pull request.
func (c ItemContext) HasItem() bool {
	return c.ItemType != ""
}
