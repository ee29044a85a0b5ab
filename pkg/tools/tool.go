// Package tools provides shared helpers for the bridge's MCP tools:
// argument extraction, output format selection, and the error taxonomy.
package tools

import (
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Standard errors for consistent error handling
var (
	ErrInvalidParams    = errors.New("invalid parameters")
	ErrNotConfigured    = errors.New("platform not configured")
	ErrResourceNotFound = errors.New("resource not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrExternalAPIError = errors.New("external API error")
)

// Format selects how a tool renders its result.
type Format string

const (
	// FormatMarkdown is the human-readable default.
	FormatMarkdown Format = "markdown"
	// FormatJSON returns the upstream payload as indented JSON.
	FormatJSON Format = "json"
)

// GetFormatArg reads the optional "format" argument, defaulting to
// Markdown on anything unrecognized.
func GetFormatArg(req mcp.CallToolRequest) Format {
	if v, ok := req.GetArguments()["format"].(string); ok && Format(v) == FormatJSON {
		return FormatJSON
	}
	return FormatMarkdown
}

// GetStringArg extracts a required string argument.
func GetStringArg(req mcp.CallToolRequest, key string) (string, error) {
	val, ok := req.GetArguments()[key]
	if !ok {
		return "", fmt.Errorf("missing argument: %s", key)
	}
	str, ok := val.(string)
	if !ok || str == "" {
		return "", fmt.Errorf("argument %s must be a non-empty string", key)
	}
	return str, nil
}

// GetIntArg extracts an optional integer argument, clamped to [min, max].
// JSON numbers arrive as float64.
func GetIntArg(req mcp.CallToolRequest, key string, def, min, max int) int {
	val, ok := req.GetArguments()[key]
	if !ok {
		return def
	}
	var n int
	switch v := val.(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	default:
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// GetBoolArg extracts an optional boolean argument.
func GetBoolArg(req mcp.CallToolRequest, key string, def bool) bool {
	if v, ok := req.GetArguments()[key].(bool); ok {
		return v
	}
	return def
}

// WrapError wraps a domain error with a context message.
func WrapError(err error, msg string) error {
	return fmt.Errorf("%s: %w", msg, err)
}
