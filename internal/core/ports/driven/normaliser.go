package driven

import "github.com/custodia-labs/boardsync/internal/core/domain"

// EventNormaliser turns a raw webhook delivery into an ItemContext.
type EventNormaliser interface {
	// Normalise decodes the payload and extracts the label event facts.
	// Absent payload fields yield empty context fields, never an error;
	// only an undecodable payload fails.
	Normalise(event domain.Event) (domain.ItemContext, error)
}
