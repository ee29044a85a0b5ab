package ed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", 5*time.Second)
}

const userPayload = `{
	"user": {"id": 9001, "name": "Jane Doe", "email": "jane@uni.test"},
	"courses": [
		{"course": {"id": 7, "name": "Operating Systems", "code": "COMP3520", "year": "2025", "session": "S1"}, "role": "student"},
		{"course": {"id": 8, "name": "Databases"}, "role": "student"}
	]
}`

func TestUserInfoTool(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(userPayload))
	}))

	tool := NewUserInfoTool(client)
	assert.Equal(t, "ed_get_user_info", tool.Handle().Name)

	res, err := tool.Handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := resultText(t, res)
	assert.Contains(t, out, "# Ed Discussion User Information")
	assert.Contains(t, out, "**Name**: Jane Doe")
	assert.Contains(t, out, "**Email**: jane@uni.test")
	assert.Contains(t, out, "**User ID**: 9001")
}

func TestListCoursesTool(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(userPayload))
	}))

	tool := NewListCoursesTool(client)
	res, err := tool.Handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := resultText(t, res)
	assert.Contains(t, out, "# My Ed Discussion Courses")
	assert.Contains(t, out, "*Total 2 courses*")
	assert.Contains(t, out, "## 1. Operating Systems")
	assert.Contains(t, out, "- **Course Code**: COMP3520")
	assert.Contains(t, out, "- **Ed Course ID**: 7")
	assert.Contains(t, out, "- **Term**: 2025 S1")
	assert.Contains(t, out, "## 2. Databases")
}

func TestListThreadsTool(t *testing.T) {
	var gotQuery map[string][]string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/courses/7/threads", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"threads": [
			{"id": 55, "title": "When is the exam?", "is_question": true, "is_answered": true,
			 "user": {"name": "Sam"}, "created_at": "2025-05-01T10:00:00Z",
			 "replies_count": 3, "vote_count": 5},
			{"id": 56, "title": "Lecture notes", "is_question": false,
			 "user": null, "num_comments": 1}
		]}`))
	}))

	tool := NewListThreadsTool(client)
	res, err := tool.Handler(context.Background(), callRequest(map[string]any{
		"course_id": float64(7),
		"filter":    "unanswered",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := resultText(t, res)
	assert.Contains(t, out, "*Total 2 threads*")
	assert.Contains(t, out, "## 1. [Question] When is the exam? ✅ Answered")
	assert.Contains(t, out, "- **Replies**: 3 | **Votes**: 5")
	assert.Contains(t, out, "## 2. [Post] Lecture notes")
	assert.Contains(t, out, "- **Author**: Anonymous")

	assert.Equal(t, []string{"new"}, gotQuery["sort"])
	assert.Equal(t, []string{"unanswered"}, gotQuery["filter"])
	assert.Equal(t, []string{"20"}, gotQuery["limit"])
}

func TestListThreadsToolBareArray(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 55, "title": "Bare"}]`))
	}))

	tool := NewListThreadsTool(client)
	res, err := tool.Handler(context.Background(), callRequest(map[string]any{"course_id": float64(7)}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "## 1. [Post] Bare")
}

func TestListThreadsToolInvalidCourse(t *testing.T) {
	tool := NewListThreadsTool(NewClient("http://unused", "tok", time.Second))

	res, err := tool.Handler(context.Background(), callRequest(map[string]any{"course_id": float64(-1)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = tool.Handler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestGetThreadTool(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/threads/55", r.URL.Path)
		w.Write([]byte(`{"thread": {
			"id": 55, "title": "When is the exam?", "is_question": true, "is_answered": true,
			"user": {"name": "Sam"}, "created_at": "2025-05-01T10:00:00Z",
			"document": "<document><paragraph>Is it in <bold>week 13</bold>?</paragraph></document>",
			"answers": [{
				"user": {"name": "Dr. Smith"}, "is_accepted": true,
				"created_at": "2025-05-01T11:00:00Z",
				"document": "<document><paragraph>Yes, see the <link href=\"https://unit.test/exam\">exam page</link>.</paragraph></document>"
			}],
			"comments": [{
				"user": {"name": "Alex"},
				"created_at": "2025-05-01T12:00:00Z",
				"document": "<document><paragraph>Thanks!</paragraph></document>"
			}]
		}}`))
	}))

	tool := NewGetThreadTool(client)
	res, err := tool.Handler(context.Background(), callRequest(map[string]any{"thread_id": float64(55)}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := resultText(t, res)
	assert.Contains(t, out, "# When is the exam?")
	assert.Contains(t, out, "**Type**: Question (Answered)")
	assert.Contains(t, out, "Is it in week 13?")
	assert.NotContains(t, out, "<paragraph>")
	assert.Contains(t, out, "## Answers (1)")
	assert.Contains(t, out, "### 1. Dr. Smith ✅ Accepted Answer")
	assert.Contains(t, out, "Yes, see the exam page (https://unit.test/exam).")
	assert.Contains(t, out, "## Comments (1)")
	assert.Contains(t, out, "Thanks!")
}

func TestGetThreadToolNoReplies(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"thread": {"id": 60, "title": "Quiet thread", "content": "plain body"}}`))
	}))

	tool := NewGetThreadTool(client)
	res, err := tool.Handler(context.Background(), callRequest(map[string]any{"thread_id": float64(60)}))
	require.NoError(t, err)

	out := resultText(t, res)
	assert.Contains(t, out, "plain body")
	assert.Contains(t, out, "*No replies yet*")
}

func TestSearchThreadsTool(t *testing.T) {
	var gotQuery map[string][]string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"threads": [{"id": 55, "title": "Exam scope"}]}`))
	}))

	tool := NewSearchThreadsTool(client)
	res, err := tool.Handler(context.Background(), callRequest(map[string]any{
		"course_id": float64(7),
		"query":     "exam",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := resultText(t, res)
	assert.Contains(t, out, "# Search Results: 'exam'")
	assert.Contains(t, out, "Exam scope")
	assert.Equal(t, []string{"exam"}, gotQuery["search"])
}

func TestSearchThreadsToolNoResults(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"threads": []}`))
	}))

	tool := NewSearchThreadsTool(client)
	res, err := tool.Handler(context.Background(), callRequest(map[string]any{
		"course_id": float64(7),
		"query":     "nothing",
	}))
	require.NoError(t, err)
	assert.Equal(t, "No threads found containing 'nothing'.", resultText(t, res))
}

func TestClientErrorMapping(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.Get(context.Background(), "/user", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ed permission denied")
}

func TestClientWithoutToken(t *testing.T) {
	client := NewClient("http://unused", "", time.Second)
	_, err := client.Get(context.Background(), "/user", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ED_API_TOKEN")
}
