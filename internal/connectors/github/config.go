package github

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/boardsync/internal/core/domain"
)

const (
	// DefaultBaseURL is the public GitHub API root. The GraphQL endpoint is
	// {BaseURL}/graphql, so GitHub Enterprise Server uses https://HOST/api.
	DefaultBaseURL = "https://api.github.com"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// ClientConfig holds everything the board client needs.
// It is filled in by the caller; the package never reads the environment.
type ClientConfig struct {
	// BaseURL is the API root. Default: DefaultBaseURL.
	BaseURL string

	// Token is a personal access token or installation token with
	// project write access.
	Token string

	// Timeout bounds each HTTP request. Default: DefaultTimeout.
	Timeout time.Duration

	// Features are sent in the GraphQL-Features header.
	Features []string
}

// Validate checks the configuration and applies defaults.
func (c *ClientConfig) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("%w: github token is required", domain.ErrInvalidInput)
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if _, err := apiBaseURL(c.BaseURL); err != nil {
		return err
	}
	return nil
}

// apiBaseURL parses the API root and ensures the trailing slash go-github
// requires for relative request paths.
func apiBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: parse base URL %q: %v", domain.ErrInvalidInput, raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q must be absolute", domain.ErrInvalidInput, raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}
