package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/boardsync/internal/logger"
)

// graphQLPath is resolved against the client's base URL.
const graphQLPath = "graphql"

// headerGraphQLFeatures opts into preview GraphQL schema features.
const headerGraphQLFeatures = "GraphQL-Features"

// Operation is a named GraphQL document.
type Operation struct {
	Name     string
	Document string
}

// Client issues GraphQL operations against the GitHub API.
// HTTP and GraphQL failures are returned as *APIError, *GraphQLError or
// *RateLimitError, wrapped with the operation name.
type Client struct {
	gh       *gh.Client
	features []string
	rate     *RateLimitState
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage     `json:"data"`
	Errors []GraphQLErrorEntry `json:"errors,omitempty"`
}

// NewClient creates a client authenticating with cfg.Token.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = cfg.Timeout

	return newClient(tc, cfg)
}

// NewClientWithHTTPClient creates a client with a custom http.Client.
// The http.Client is responsible for authentication; cfg.Token is ignored.
func NewClientWithHTTPClient(httpClient *http.Client, cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return newClient(httpClient, cfg)
}

func newClient(httpClient *http.Client, cfg ClientConfig) (*Client, error) {
	baseURL, err := apiBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	client := gh.NewClient(httpClient)
	client.BaseURL = baseURL

	return &Client{
		gh:       client,
		features: cfg.Features,
		rate:     NewRateLimitState(),
	}, nil
}

// RateLimit returns the rate limit state observed so far.
// It is shared by every operation issued through the client.
func (c *Client) RateLimit() *RateLimitState {
	return c.rate
}

// GraphQL executes op with the given variables and decodes the response's
// data object into out. A response carrying an errors array fails even when
// partial data is present.
func (c *Client) GraphQL(ctx context.Context, op Operation, variables map[string]any, out any) error {
	logger.Debug("GraphQL %s:\n%s\nvariables: %v", op.Name, op.Document, variables)

	req, err := c.gh.NewRequest(http.MethodPost, graphQLPath, &graphQLRequest{
		Query:     op.Document,
		Variables: variables,
	})
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op.Name, err)
	}
	if len(c.features) > 0 {
		req.Header.Set(headerGraphQLFeatures, strings.Join(c.features, ","))
	}

	var body graphQLResponse
	resp, err := c.gh.Do(ctx, req, &body)
	c.rate.Update(resp)
	if err != nil {
		return c.wrapError(err, op.Name)
	}

	logger.Debug("GraphQL %s response: %s", op.Name, body.Data)

	if len(body.Errors) > 0 {
		return &GraphQLError{Operation: op.Name, Errors: body.Errors}
	}
	if out == nil || len(body.Data) == 0 || string(body.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(body.Data, out); err != nil {
		return fmt.Errorf("%s: decode data: %w", op.Name, err)
	}
	return nil
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	// Check for rate limit errors first; they are not ErrorResponses.
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return c.rate.Error()
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
