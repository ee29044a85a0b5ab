package ed

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tidwall/gjson"

	"github.com/campuskit/mcp-server-edu-bridge/core"
	"github.com/campuskit/mcp-server-edu-bridge/pkg/tools"
)

// UserInfoTool returns the authenticated user's profile. Useful for
// verifying that the API token works.
type UserInfoTool struct {
	client *Client
	handle mcp.Tool
}

// NewUserInfoTool creates the ed_get_user_info tool.
func NewUserInfoTool(client *Client) core.Tool {
	t := &UserInfoTool{client: client}
	t.handle = mcp.NewTool(
		"ed_get_user_info",
		mcp.WithDescription("Get current Ed Discussion user information. Used to verify if the API token is valid and get basic user information."),
		mcp.WithString(
			"format",
			mcp.Description("Output format."),
			mcp.Enum("markdown", "json"),
		),
	)
	return t
}

// Handle returns the tool's definition.
func (t *UserInfoTool) Handle() mcp.Tool {
	return t.handle
}

// Handler executes the tool.
func (t *UserInfoTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body, err := t.client.Get(ctx, "/user", nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
	}

	if tools.GetFormatArg(request) == tools.FormatJSON {
		return mcp.NewToolResultText(tools.IndentJSON(body)), nil
	}
	return mcp.NewToolResultText(formatUser(gjson.ParseBytes(body))), nil
}

// ListCoursesTool lists the user's Ed courses. Thread tools take the Ed
// course ID this returns, not the Canvas one.
type ListCoursesTool struct {
	client *Client
	handle mcp.Tool
}

// NewListCoursesTool creates the ed_list_courses tool.
func NewListCoursesTool(client *Client) core.Tool {
	t := &ListCoursesTool{client: client}
	t.handle = mcp.NewTool(
		"ed_list_courses",
		mcp.WithDescription("Get all courses the current user has on Ed Discussion. Returns course name, course code, and the Ed course ID used by the thread tools."),
		mcp.WithString(
			"format",
			mcp.Description("Output format."),
			mcp.Enum("markdown", "json"),
		),
	)
	return t
}

// Handle returns the tool's definition.
func (t *ListCoursesTool) Handle() mcp.Tool {
	return t.handle
}

// Handler executes the tool.
func (t *ListCoursesTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body, err := t.client.Get(ctx, "/user", nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
	}

	courses := gjson.GetBytes(body, "courses")

	if tools.GetFormatArg(request) == tools.FormatJSON {
		raw := courses.Raw
		if raw == "" {
			raw = "[]"
		}
		return mcp.NewToolResultText(tools.IndentJSON([]byte(raw))), nil
	}
	return mcp.NewToolResultText(formatCourses(courses)), nil
}
