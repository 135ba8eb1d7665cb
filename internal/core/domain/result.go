package domain

import (
	"encoding/json"
	"fmt"
)

// AddedItem records a board item created for a matching mapping row.
type AddedItem struct {
	ProjectNumber int    `json:"projectNumber"`
	ItemID        string `json:"itemId"`
}

// RemovedItems records the board items deleted for a matching mapping row.
type RemovedItems struct {
	ProjectNumber int      `json:"projectNumber"`
	ItemIDs       []string `json:"itemIds"`
}

// RunResult summarises one invocation of the label sync.
type RunResult struct {
	// ID correlates the log lines of one invocation.
	ID string `json:"id"`

	Context ItemContext    `json:"context"`
	Added   []AddedItem    `json:"added,omitempty"`
	Removed []RemovedItems `json:"removed,omitempty"`
}

// Matched returns the number of mapping rows that were acted on.
func (r *RunResult) Matched() int {
	if r == nil {
		return 0
	}
	return len(r.Added) + len(r.Removed)
}

// RunFailure is the single failure report of an invocation.
// It carries the original error and a snapshot of the event context.
type RunFailure struct {
	RunID   string
	Context ItemContext
	Err     error
}

func (f *RunFailure) Error() string {
	snapshot, err := json.MarshalIndent(f.Context, "", "  ")
	if err != nil {
		snapshot = []byte(fmt.Sprintf("%+v", f.Context))
	}
	return fmt.Sprintf("project label sync failed with error: %v\n Event context:\n\n%s", f.Err, snapshot)
}

func (f *RunFailure) Unwrap() error {
	return f.Err
}
