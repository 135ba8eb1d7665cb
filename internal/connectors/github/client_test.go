package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/boardsync/internal/core/domain"
)

// recordedRequest is a GraphQL request as seen by the test server.
type recordedRequest struct {
	Path          string
	Authorization string
	Features      string
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

// graphQLServer answers each request with the next canned response.
type graphQLServer struct {
	t         *testing.T
	server    *httptest.Server
	responses []cannedResponse
	requests  []recordedRequest
}

type cannedResponse struct {
	status  int
	headers map[string]string
	body    string
}

func newGraphQLServer(t *testing.T, responses ...cannedResponse) *graphQLServer {
	t.Helper()
	s := &graphQLServer{t: t, responses: responses}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)
	return s
}

func ok(body string) cannedResponse {
	return cannedResponse{status: http.StatusOK, body: body}
}

func (s *graphQLServer) handle(w http.ResponseWriter, r *http.Request) {
	var req recordedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.t.Errorf("decode request: %v", err)
	}
	req.Path = r.URL.Path
	req.Authorization = r.Header.Get("Authorization")
	req.Features = r.Header.Get(headerGraphQLFeatures)
	s.requests = append(s.requests, req)

	if len(s.responses) == 0 {
		s.t.Errorf("unexpected request %d", len(s.requests))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]

	for k, v := range resp.headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (s *graphQLServer) client(t *testing.T) *Client {
	t.Helper()
	c, err := NewClientWithHTTPClient(s.server.Client(), ClientConfig{BaseURL: s.server.URL})
	require.NoError(t, err)
	return c
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func TestNewClient(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		c, err := NewClient(context.Background(), ClientConfig{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Nil(t, c)
	})

	t.Run("rejects a relative base URL", func(t *testing.T) {
		c, err := NewClient(context.Background(), ClientConfig{Token: "tok", BaseURL: "api.github.com"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Nil(t, c)
	})

	t.Run("defaults to the public API", func(t *testing.T) {
		c, err := NewClient(context.Background(), ClientConfig{Token: "tok"})

		require.NoError(t, err)
		assert.Equal(t, "https://api.github.com/", c.gh.BaseURL.String())
	})

	t.Run("keeps an enterprise path prefix", func(t *testing.T) {
		srv := newGraphQLServer(t, ok(`{"data":{}}`))
		c, err := NewClient(context.Background(), ClientConfig{Token: "tok", BaseURL: srv.server.URL + "/api"})
		require.NoError(t, err)

		err = c.GraphQL(context.Background(), Operation{Name: "ping", Document: "{ viewer { login } }"}, nil, nil)

		require.NoError(t, err)
		require.Len(t, srv.requests, 1)
		assert.Equal(t, "/api/graphql", srv.requests[0].Path)
	})

	t.Run("sends the token as a bearer token", func(t *testing.T) {
		srv := newGraphQLServer(t, ok(`{"data":{}}`))
		c, err := NewClient(context.Background(), ClientConfig{Token: "secret-token", BaseURL: srv.server.URL})
		require.NoError(t, err)

		err = c.GraphQL(context.Background(), Operation{Name: "ping", Document: "{ viewer { login } }"}, nil, nil)

		require.NoError(t, err)
		require.Len(t, srv.requests, 1)
		assert.Equal(t, "Bearer secret-token", srv.requests[0].Authorization)
		assert.Equal(t, "/graphql", srv.requests[0].Path)
	})
}

func TestClientConfig_Validate_Defaults(t *testing.T) {
	cfg := ClientConfig{Token: "tok"}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestClient_GraphQL_DecodesData(t *testing.T) {
	srv := newGraphQLServer(t, ok(`{"data":{"viewer":{"login":"octocat"}}}`))
	c := srv.client(t)

	var out struct {
		Viewer struct {
			Login string `json:"login"`
		} `json:"viewer"`
	}
	err := c.GraphQL(context.Background(), Operation{Name: "viewer", Document: "query { viewer { login } }"},
		map[string]any{"a": 1}, &out)

	require.NoError(t, err)
	assert.Equal(t, "octocat", out.Viewer.Login)
	assert.Equal(t, "query { viewer { login } }", srv.requests[0].Query)
	assert.Equal(t, map[string]any{"a": float64(1)}, srv.requests[0].Variables)
}

func TestClient_GraphQL_FeaturesHeader(t *testing.T) {
	srv := newGraphQLServer(t, ok(`{"data":{}}`))
	c, err := NewClientWithHTTPClient(srv.server.Client(), ClientConfig{
		BaseURL:  srv.server.URL,
		Features: []string{"projects_next_graphql", "issue_types"},
	})
	require.NoError(t, err)

	err = c.GraphQL(context.Background(), Operation{Name: "op", Document: "{}"}, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "projects_next_graphql,issue_types", srv.requests[0].Features)
}

func TestClient_GraphQL_ErrorsArray(t *testing.T) {
	srv := newGraphQLServer(t, ok(`{
		"data": null,
		"errors": [
			{"type": "FORBIDDEN", "message": "Resource not accessible by integration"},
			{"message": "second problem"}
		]
	}`))
	c := srv.client(t)

	err := c.GraphQL(context.Background(), Operation{Name: "createItem", Document: "mutation {}"}, nil, nil)

	require.Error(t, err)
	var gqlErr *GraphQLError
	require.ErrorAs(t, err, &gqlErr)
	assert.Equal(t, "createItem", gqlErr.Operation)
	assert.Len(t, gqlErr.Errors, 2)
	assert.Equal(t, "github: graphql createItem: Resource not accessible by integration; second problem", err.Error())
	assert.True(t, IsForbidden(err))
	assert.False(t, IsNotFound(err))
}

func TestClient_GraphQL_HTTPError(t *testing.T) {
	srv := newGraphQLServer(t, cannedResponse{
		status: http.StatusUnauthorized,
		body:   `{"message":"Bad credentials","documentation_url":"https://docs.github.com/graphql"}`,
	})
	c := srv.client(t)

	err := c.GraphQL(context.Background(), Operation{Name: "findProjectId", Document: "query {}"}, nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Bad credentials", apiErr.Message)
	assert.Contains(t, apiErr.URL, "/graphql")
	assert.True(t, IsUnauthorized(err))
}

func TestClient_GraphQL_RateLimited(t *testing.T) {
	reset := time.Now().Add(10 * time.Minute).Unix()
	srv := newGraphQLServer(t, cannedResponse{
		status: http.StatusForbidden,
		headers: map[string]string{
			"X-RateLimit-Limit":     "5000",
			"X-RateLimit-Remaining": "0",
			"X-RateLimit-Reset":     strconv.FormatInt(reset, 10),
		},
		body: `{"message":"API rate limit exceeded"}`,
	})
	c := srv.client(t)

	err := c.GraphQL(context.Background(), Operation{Name: "deleteItem", Document: "mutation {}"}, nil, nil)

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, reset, rlErr.ResetAt.Unix())
	assert.Equal(t, 0, rlErr.Remaining)
	assert.Equal(t, 5000, rlErr.Limit)
}

func TestClient_GraphQL_TracksRateLimit(t *testing.T) {
	srv := newGraphQLServer(t, cannedResponse{
		status: http.StatusOK,
		headers: map[string]string{
			"X-RateLimit-Limit":     "5000",
			"X-RateLimit-Remaining": "4321",
			"X-RateLimit-Reset":     "1700000000",
		},
		body: `{"data":{}}`,
	})
	c := srv.client(t)
	assert.Equal(t, -1, c.RateLimit().Remaining())

	err := c.GraphQL(context.Background(), Operation{Name: "op", Document: "{}"}, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 4321, c.RateLimit().Remaining())
	assert.Equal(t, 5000, c.RateLimit().Limit())
	assert.Equal(t, int64(1700000000), c.RateLimit().ResetTime().Unix())
}

func TestClient_GraphQL_UndecodableData(t *testing.T) {
	srv := newGraphQLServer(t, ok(`{"data":{"viewer":"not-an-object"}}`))
	c := srv.client(t)

	var out struct {
		Viewer struct{ Login string } `json:"viewer"`
	}
	err := c.GraphQL(context.Background(), Operation{Name: "viewer", Document: "{}"}, nil, &out)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "viewer: decode data")
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 502, Message: "Bad Gateway", URL: "https://api.github.com/graphql"}

	assert.Equal(t, "github: API error 502: Bad Gateway (URL: https://api.github.com/graphql)", err.Error())
}

func TestRateLimitError_Error(t *testing.T) {
	resetAt := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	err := &RateLimitError{ResetAt: resetAt, Remaining: 0, Limit: 5000}

	assert.Equal(t, "github: rate limit exceeded, resets at 2024-01-15T10:30:00Z", err.Error())
}

func TestErrorClassifiers(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		notFound     bool
		unauthorized bool
		forbidden    bool
		rateLimited  bool
	}{
		{"api 404", &APIError{StatusCode: 404}, true, false, false, false},
		{"api 401", &APIError{StatusCode: 401}, false, true, false, false},
		{"api 403", &APIError{StatusCode: 403}, false, false, true, false},
		{"graphql not found", &GraphQLError{Errors: []GraphQLErrorEntry{{Type: "NOT_FOUND"}}}, true, false, false, false},
		{"graphql mixed", &GraphQLError{Errors: []GraphQLErrorEntry{{Type: "NOT_FOUND"}, {Type: "INTERNAL"}}}, false, false, false, false},
		{"graphql empty", &GraphQLError{}, false, false, false, false},
		{"rate limited", &RateLimitError{}, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.unauthorized, IsUnauthorized(tt.err))
			assert.Equal(t, tt.forbidden, IsForbidden(tt.err))
			assert.Equal(t, tt.rateLimited, IsRateLimited(tt.err))
		})
	}
}
