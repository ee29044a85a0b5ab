// Package ed exposes the Ed Discussion REST API as MCP tools: user info,
// course listing, and thread listing, detail, and search. Thread and
// reply bodies are stored by Ed in an XML-like markup dialect and are
// normalized to plain text before display.
package ed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/campuskit/mcp-server-edu-bridge/pkg/tools"
)

var statusMessages = map[int]string{
	http.StatusUnauthorized:    "Ed authentication failed. Please check if API token is valid.",
	http.StatusForbidden:       "Ed permission denied. You may not have access to this course.",
	http.StatusNotFound:        "Ed resource not found. Please check if course ID or thread ID is correct.",
	http.StatusTooManyRequests: "Ed request rate limit exceeded. Please try again later.",
}

// Client is a minimal Ed Discussion REST client with bearer-token auth.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates an Ed client. The token may be empty; requests then
// fail with a configuration error instead of hitting the network.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Get performs an authenticated GET against the Ed API and returns the
// raw response body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.token == "" {
		return nil, tools.WrapError(tools.ErrNotConfigured,
			"Ed API token not configured. Please set the ED_API_TOKEN environment variable")
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	log.Debug("ed request", "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errors.New("Ed request timed out. Please try again later.")
		}
		return nil, tools.WrapError(tools.ErrExternalAPIError, "Ed request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, tools.WrapError(tools.ErrExternalAPIError, "failed to read Ed response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("ed request failed", "path", path, "status", resp.StatusCode, "request_id", requestID)
		if msg, ok := statusMessages[resp.StatusCode]; ok {
			return nil, errors.New(msg)
		}
		return nil, fmt.Errorf("Ed API error (status code: %d)", resp.StatusCode)
	}

	return body, nil
}
