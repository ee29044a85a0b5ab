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

// ListCoursesTool lists the courses the current user is enrolled in.
type ListCoursesTool struct {
	client *Client
	handle mcp.Tool
}

// NewListCoursesTool creates the canvas_list_courses tool.
func NewListCoursesTool(client *Client) core.Tool {
	t := &ListCoursesTool{client: client}
	t.handle = mcp.NewTool(
		"canvas_list_courses",
		mcp.WithDescription("Get all courses the current user is enrolled in on Canvas. Returns course name, course code, course ID, and other basic information."),
		mcp.WithString(
			"enrollment_state",
			mcp.Description("Course enrollment state filter: 'active' (current), 'completed' (finished), 'all' (all)."),
			mcp.Enum("active", "completed", "all"),
		),
		mcp.WithNumber(
			"limit",
			mcp.Description("Number of courses to return (1-100, default 20)."),
		),
		mcp.WithString(
			"format",
			mcp.Description("Output format: 'markdown' (human-readable) or 'json' (machine-readable)."),
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
	state := "active"
	if v, ok := request.GetArguments()["enrollment_state"].(string); ok && v != "" {
		switch v {
		case "active", "completed", "all":
			state = v
		default:
			return mcp.NewToolResultError(fmt.Sprintf("invalid enrollment_state: %q", v)), nil
		}
	}
	limit := tools.GetIntArg(request, "limit", 20, 1, 100)

	query := url.Values{}
	query.Set("enrollment_state", state)
	query.Set("per_page", strconv.Itoa(limit))
	query.Add("include[]", "term")

	body, err := t.client.Get(ctx, "/courses", query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
	}

	if tools.GetFormatArg(request) == tools.FormatJSON {
		return mcp.NewToolResultText(tools.IndentJSON(body)), nil
	}
	return mcp.NewToolResultText(formatCourses(gjson.ParseBytes(body))), nil
}

// GetCourseTool fetches detailed information for one course.
type GetCourseTool struct {
	client *Client
	handle mcp.Tool
}

// NewGetCourseTool creates the canvas_get_course tool.
func NewGetCourseTool(client *Client) core.Tool {
	t := &GetCourseTool{client: client}
	t.handle = mcp.NewTool(
		"canvas_get_course",
		mcp.WithDescription("Get detailed information for a specific Canvas course, including teachers and syllabus."),
		mcp.WithString(
			"course_id",
			mcp.Required(),
			mcp.Description("Canvas course ID (e.g., '12345')."),
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
func (t *GetCourseTool) Handle() mcp.Tool {
	return t.handle
}

// Handler executes the tool.
func (t *GetCourseTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	courseID, err := tools.GetStringArg(request, "course_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	query := url.Values{}
	for _, inc := range []string{"term", "teachers", "total_students", "syllabus_body"} {
		query.Add("include[]", inc)
	}

	body, err := t.client.Get(ctx, "/courses/"+courseID, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
	}

	if tools.GetFormatArg(request) == tools.FormatJSON {
		return mcp.NewToolResultText(tools.IndentJSON(body)), nil
	}
	return mcp.NewToolResultText(formatCourseDetail(gjson.ParseBytes(body))), nil
}
