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

// ListAnnouncementsTool fetches recent announcements for a course.
type ListAnnouncementsTool struct {
	client *Client
	handle mcp.Tool
}

// NewListAnnouncementsTool creates the canvas_list_announcements tool.
func NewListAnnouncementsTool(client *Client) core.Tool {
	t := &ListAnnouncementsTool{client: client}
	t.handle = mcp.NewTool(
		"canvas_list_announcements",
		mcp.WithDescription("Get announcements for a specific Canvas course. Announcement bodies are converted from HTML to readable text."),
		mcp.WithString(
			"course_id",
			mcp.Required(),
			mcp.Description("Canvas course ID."),
		),
		mcp.WithNumber(
			"limit",
			mcp.Description("Number of announcements to return (1-50, default 10)."),
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
func (t *ListAnnouncementsTool) Handle() mcp.Tool {
	return t.handle
}

// Handler executes the tool.
func (t *ListAnnouncementsTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	courseID, err := tools.GetStringArg(request, "course_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := tools.GetIntArg(request, "limit", 10, 1, 50)

	query := url.Values{}
	query.Add("context_codes[]", "course_"+courseID)
	query.Set("per_page", strconv.Itoa(limit))

	body, err := t.client.Get(ctx, "/announcements", query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
	}

	if tools.GetFormatArg(request) == tools.FormatJSON {
		return mcp.NewToolResultText(tools.IndentJSON(body)), nil
	}

	courseName := t.client.courseName(ctx, courseID)
	return mcp.NewToolResultText(formatAnnouncements(gjson.ParseBytes(body), courseName)), nil
}
