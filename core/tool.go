// Package core defines the contract every tool in the bridge satisfies.
package core

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool is a single callable exposed to the assistant. Handle returns the
// MCP tool definition (name, description, input schema); Handler executes
// a call against it.
type Tool interface {
	Handle() mcp.Tool
	Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}
