// Package canvas exposes the Canvas LMS REST API as MCP tools: course
// listing, course details, announcements, and assignments. Every tool
// issues a single authenticated GET and renders the response as Markdown
// or raw JSON.
package canvas

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
	"github.com/tidwall/gjson"

	"github.com/campuskit/mcp-server-edu-bridge/pkg/tools"
)

// statusMessages maps upstream HTTP failures to the messages surfaced to
// the assistant.
var statusMessages = map[int]string{
	http.StatusUnauthorized:    "Canvas authentication failed. Please check if API token is valid.",
	http.StatusForbidden:       "Canvas permission denied.",
	http.StatusNotFound:        "Canvas resource not found. Please check if the ID is correct.",
	http.StatusTooManyRequests: "Canvas request rate limit exceeded. Please try again later.",
}

// Client is a minimal Canvas REST client with bearer-token auth.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Canvas client. The token may be empty; requests
// then fail with a configuration error instead of hitting the network.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Get performs an authenticated GET against the Canvas API and returns
// the raw response body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.token == "" {
		return nil, tools.WrapError(tools.ErrNotConfigured,
			"Canvas API token not configured. Please set the CANVAS_API_TOKEN environment variable")
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

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	log.Debug("canvas request", "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errors.New("Canvas request timed out. Please try again later.")
		}
		return nil, tools.WrapError(tools.ErrExternalAPIError, "Canvas request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, tools.WrapError(tools.ErrExternalAPIError, "failed to read Canvas response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("canvas request failed", "path", path, "status", resp.StatusCode, "request_id", requestID)
		if msg, ok := statusMessages[resp.StatusCode]; ok {
			return nil, errors.New(msg)
		}
		return nil, fmt.Errorf("Canvas API error (status code: %d)", resp.StatusCode)
	}

	return body, nil
}

// courseName fetches a course's display name for Markdown headers. Lookup
// failures degrade to an empty name rather than failing the calling tool.
func (c *Client) courseName(ctx context.Context, courseID string) string {
	body, err := c.Get(ctx, "/courses/"+courseID, nil)
	if err != nil {
		return ""
	}
	return gjson.GetBytes(body, "name").String()
}
