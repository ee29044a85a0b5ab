package canvas

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tidwall/gjson"

	"github.com/campuskit/mcp-server-edu-bridge/core"
	"github.com/campuskit/mcp-server-edu-bridge/pkg/tools"
)

// ListAssignmentsTool fetches a course's assignments ordered by due date.
type ListAssignmentsTool struct {
	client *Client
	handle mcp.Tool
}

// NewListAssignmentsTool creates the canvas_list_assignments tool.
func NewListAssignmentsTool(client *Client) core.Tool {
	t := &ListAssignmentsTool{client: client}
	t.handle = mcp.NewTool(
		"canvas_list_assignments",
		mcp.WithDescription("Get all assignments for a specific Canvas course, ordered by due date."),
		mcp.WithString(
			"course_id",
			mcp.Required(),
			mcp.Description("Canvas course ID."),
		),
		mcp.WithBoolean(
			"include_submissions",
			mcp.Description("Whether to include submission status information."),
		),
		mcp.WithNumber(
			"limit",
			mcp.Description("Number of assignments to return (1-100, default 20)."),
		),
		mcp.WithString(
			"format",
			mcp.Description("Output format."),
			mcp.Enum("markdown", "json"),
		),
	)
	return t
}

// Handle returns the tool's definition.
func (t *ListAssignmentsTool) Handle() mcp.Tool {
	return t.handle
}

// Handler executes the tool.
func (t *ListAssignmentsTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	courseID, err := tools.GetStringArg(request, "course_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := tools.GetIntArg(request, "limit", 20, 1, 100)

	query := url.Values{}
	query.Set("per_page", strconv.Itoa(limit))
	query.Set("order_by", "due_at")
	if tools.GetBoolArg(request, "include_submissions", false) {
		query.Add("include[]", "submission")
	}

	body, err := t.client.Get(ctx, "/courses/"+courseID+"/assignments", query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
	}

	if tools.GetFormatArg(request) == tools.FormatJSON {
		return mcp.NewToolResultText(tools.IndentJSON(body)), nil
	}

	courseName := t.client.courseName(ctx, courseID)
	return mcp.NewToolResultText(formatAssignments(gjson.ParseBytes(body), courseName)), nil
}
