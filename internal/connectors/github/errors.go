package github

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// GitHub-specific errors.
var (
	// ErrEmptyResponse indicates a successful response without the expected data.
	ErrEmptyResponse = errors.New("github: empty response")
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// APIError represents a GitHub API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// GraphQLError carries the errors array of a GraphQL response.
// GitHub answers such requests with HTTP 200.
type GraphQLError struct {
	Operation string
	Errors    []GraphQLErrorEntry
}

// GraphQLErrorEntry is one element of a GraphQL errors array.
type GraphQLErrorEntry struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

func (e *GraphQLError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, entry := range e.Errors {
		msgs = append(msgs, entry.Message)
	}
	return fmt.Sprintf("github: graphql %s: %s", e.Operation, strings.Join(msgs, "; "))
}

// onlyNotFound reports whether every entry is a NOT_FOUND error.
func (e *GraphQLError) onlyNotFound() bool {
	if len(e.Errors) == 0 {
		return false
	}
	for _, entry := range e.Errors {
		if entry.Type != "NOT_FOUND" {
			return false
		}
	}
	return true
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	var gqlErr *GraphQLError
	if errors.As(err, &gqlErr) {
		return gqlErr.onlyNotFound()
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 403
	}
	var gqlErr *GraphQLError
	if errors.As(err, &gqlErr) {
		for _, entry := range gqlErr.Errors {
			if entry.Type == "FORBIDDEN" {
				return true
			}
		}
	}
	return false
}
