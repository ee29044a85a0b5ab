package ed

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

// threadList tolerates both response shapes Ed uses: a bare array or an
// object wrapping it under "threads".
func threadList(body []byte) gjson.Result {
	parsed := gjson.ParseBytes(body)
	if parsed.IsArray() {
		return parsed
	}
	return parsed.Get("threads")
}

func courseIDArg(request mcp.CallToolRequest) (string, error) {
	// Ed course IDs are numeric; accept both number and string arguments.
	switch v := request.GetArguments()["course_id"].(type) {
	case float64:
		if v <= 0 {
			return "", fmt.Errorf("course_id must be positive")
		}
		return strconv.Itoa(int(v)), nil
	case string:
		if v == "" {
			return "", fmt.Errorf("course_id must be provided")
		}
		return v, nil
	default:
		return "", fmt.Errorf("course_id must be provided")
	}
}

// ListThreadsTool lists a course's discussion threads, newest first.
type ListThreadsTool struct {
	client *Client
	handle mcp.Tool
}

// NewListThreadsTool creates the ed_list_threads tool.
func NewListThreadsTool(client *Client) core.Tool {
	t := &ListThreadsTool{client: client}
	t.handle = mcp.NewTool(
		"ed_list_threads",
		mcp.WithDescription("Get the discussion thread list for a specific Ed course. Can filter for unread, unanswered, or starred threads."),
		mcp.WithNumber(
			"course_id",
			mcp.Required(),
			mcp.Description("Ed course ID (numeric, obtained from ed_list_courses)."),
		),
		mcp.WithNumber(
			"limit",
			mcp.Description("Number of threads to return (1-100, default 20)."),
		),
		mcp.WithString(
			"filter",
			mcp.Description("Thread filter."),
			mcp.Enum("all", "unread", "unanswered", "starred"),
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
func (t *ListThreadsTool) Handle() mcp.Tool {
	return t.handle
}

// Handler executes the tool.
func (t *ListThreadsTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	courseID, err := courseIDArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := tools.GetIntArg(request, "limit", 20, 1, 100)

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("sort", "new")
	switch filter, _ := request.GetArguments()["filter"].(string); filter {
	case "unread", "unanswered", "starred":
		query.Set("filter", filter)
	}

	body, err := t.client.Get(ctx, "/courses/"+courseID+"/threads", query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
	}

	threads := threadList(body)
	if tools.GetFormatArg(request) == tools.FormatJSON {
		raw := threads.Raw
		if raw == "" {
			raw = "[]"
		}
		return mcp.NewToolResultText(tools.IndentJSON([]byte(raw))), nil
	}
	return mcp.NewToolResultText(formatThreads(threads, "")), nil
}

// GetThreadTool fetches one thread with all of its answers and comments,
// bodies normalized from Ed's markup dialect to plain text.
type GetThreadTool struct {
	client *Client
	handle mcp.Tool
}

// NewGetThreadTool creates the ed_get_thread tool.
func NewGetThreadTool(client *Client) core.Tool {
	t := &GetThreadTool{client: client}
	t.handle = mcp.NewTool(
		"ed_get_thread",
		mcp.WithDescription("Get the detailed content of a single Ed Discussion thread, including all replies and answers."),
		mcp.WithNumber(
			"thread_id",
			mcp.Required(),
			mcp.Description("Ed thread ID."),
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
func (t *GetThreadTool) Handle() mcp.Tool {
	return t.handle
}

// Handler executes the tool.
func (t *GetThreadTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var threadID string
	switch v := request.GetArguments()["thread_id"].(type) {
	case float64:
		if v <= 0 {
			return mcp.NewToolResultError("thread_id must be positive"), nil
		}
		threadID = strconv.Itoa(int(v))
	case string:
		if v == "" {
			return mcp.NewToolResultError("thread_id must be provided"), nil
		}
		threadID = v
	default:
		return mcp.NewToolResultError("thread_id must be provided"), nil
	}

	body, err := t.client.Get(ctx, "/threads/"+threadID, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
	}

	thread := gjson.GetBytes(body, "thread")
	if !thread.Exists() {
		thread = gjson.ParseBytes(body)
	}

	if tools.GetFormatArg(request) == tools.FormatJSON {
		return mcp.NewToolResultText(tools.IndentJSON([]byte(thread.Raw))), nil
	}
	return mcp.NewToolResultText(formatThreadDetail(thread)), nil
}

// SearchThreadsTool searches a course's threads by keyword.
type SearchThreadsTool struct {
	client *Client
	handle mcp.Tool
}

// NewSearchThreadsTool creates the ed_search_threads tool.
func NewSearchThreadsTool(client *Client) core.Tool {
	t := &SearchThreadsTool{client: client}
	t.handle = mcp.NewTool(
		"ed_search_threads",
		mcp.WithDescription("Search threads in an Ed Discussion course by keyword."),
		mcp.WithNumber(
			"course_id",
			mcp.Required(),
			mcp.Description("Ed course ID."),
		),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Search keywords."),
		),
		mcp.WithNumber(
			"limit",
			mcp.Description("Number of threads to return (1-100, default 20)."),
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
func (t *SearchThreadsTool) Handle() mcp.Tool {
	return t.handle
}

// Handler executes the tool.
func (t *SearchThreadsTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	courseID, err := courseIDArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	search, err := tools.GetStringArg(request, "query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := tools.GetIntArg(request, "limit", 20, 1, 100)

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("search", search)

	body, err := t.client.Get(ctx, "/courses/"+courseID+"/threads", query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
	}

	threads := threadList(body)
	if tools.GetFormatArg(request) == tools.FormatJSON {
		raw := threads.Raw
		if raw == "" {
			raw = "[]"
		}
		return mcp.NewToolResultText(tools.IndentJSON([]byte(raw))), nil
	}

	if len(threads.Array()) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No threads found containing '%s'.", search)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("# Search Results: '%s'\n\n%s", search, formatThreads(threads, ""))), nil
}
