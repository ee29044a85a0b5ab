package ed

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/campuskit/mcp-server-edu-bridge/pkg/markup"
	"github.com/campuskit/mcp-server-edu-bridge/pkg/tools"
)

// bodyText extracts a thread or reply body. Ed stores bodies under
// "document" in its markup dialect; older payloads carry pre-rendered
// text under "content".
func bodyText(item gjson.Result) string {
	if doc := item.Get("document").String(); doc != "" {
		text, err := markup.Normalize(doc)
		if err != nil {
			return doc
		}
		return text
	}
	return item.Get("content").String()
}

// authorName reads the poster's display name, tolerating a missing or
// null user object (anonymous posts).
func authorName(item gjson.Result) string {
	if name := item.Get("user.name").String(); name != "" {
		return name
	}
	return "Anonymous"
}

func formatUser(result gjson.Result) string {
	user := result.Get("user")
	if !user.Exists() {
		user = result
	}

	var b strings.Builder
	b.WriteString("# Ed Discussion User Information\n\n")
	name := user.Get("name").String()
	if name == "" {
		name = "Unknown"
	}
	email := user.Get("email").String()
	if email == "" {
		email = "Unknown"
	}
	fmt.Fprintf(&b, "**Name**: %s\n", name)
	fmt.Fprintf(&b, "**Email**: %s\n", email)
	fmt.Fprintf(&b, "**User ID**: %s", user.Get("id").String())
	return b.String()
}

func formatCourses(courses gjson.Result) string {
	items := courses.Array()
	if len(items) == 0 {
		return "No Ed Discussion courses found."
	}

	var b strings.Builder
	b.WriteString("# My Ed Discussion Courses\n\n")
	fmt.Fprintf(&b, "*Total %d courses*\n\n", len(items))

	for i, item := range items {
		// Enrollments nest the course record under "course"; some
		// payloads carry the fields at the top level.
		course := item.Get("course")
		if !course.Exists() {
			course = item
		}
		name := course.Get("name").String()
		if name == "" {
			name = "Unnamed Course"
		}
		fmt.Fprintf(&b, "## %d. %s\n", i+1, name)
		if code := course.Get("code").String(); code != "" {
			fmt.Fprintf(&b, "- **Course Code**: %s\n", code)
		}
		fmt.Fprintf(&b, "- **Ed Course ID**: %s\n", course.Get("id").String())
		year := course.Get("year").String()
		session := course.Get("session").String()
		if year != "" && session != "" {
			fmt.Fprintf(&b, "- **Term**: %s %s\n", year, session)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func threadStatus(thread gjson.Result) (kind, status string) {
	kind = "Post"
	if thread.Get("is_question").Bool() {
		kind = "Question"
		if thread.Get("is_answered").Bool() {
			status = " ✅ Answered"
		} else {
			status = " ❓ Unanswered"
		}
	}
	return kind, status
}

func formatThreads(threads gjson.Result, courseName string) string {
	items := threads.Array()
	if len(items) == 0 {
		if courseName != "" {
			return fmt.Sprintf("Course %s has no discussion threads.", courseName)
		}
		return "No discussion threads."
	}

	var b strings.Builder
	if courseName != "" {
		fmt.Fprintf(&b, "# %s - Ed Discussion Threads\n\n", courseName)
	} else {
		b.WriteString("# Ed Discussion Threads\n\n")
	}
	fmt.Fprintf(&b, "*Total %d threads*\n\n", len(items))

	for i, thread := range items {
		title := thread.Get("title").String()
		if title == "" {
			title = "No Title"
		}
		kind, status := threadStatus(thread)

		replies := thread.Get("replies_count").Int()
		if replies == 0 {
			replies = thread.Get("num_comments").Int()
		}

		fmt.Fprintf(&b, "## %d. [%s] %s%s\n", i+1, kind, title, status)
		fmt.Fprintf(&b, "- **Thread ID**: %s\n", thread.Get("id").String())
		fmt.Fprintf(&b, "- **Author**: %s\n", authorName(thread))
		fmt.Fprintf(&b, "- **Posted at**: %s\n", tools.FormatTime(thread.Get("created_at").String()))
		fmt.Fprintf(&b, "- **Replies**: %d | **Votes**: %d\n\n", replies, thread.Get("vote_count").Int())
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatThreadDetail(thread gjson.Result) string {
	title := thread.Get("title").String()
	if title == "" {
		title = "No Title"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	if thread.Get("is_question").Bool() {
		answered := "Unanswered"
		if thread.Get("is_answered").Bool() {
			answered = "Answered"
		}
		fmt.Fprintf(&b, "**Type**: Question (%s)\n", answered)
	} else {
		b.WriteString("**Type**: Post\n")
	}
	fmt.Fprintf(&b, "**Author**: %s\n", authorName(thread))
	fmt.Fprintf(&b, "**Posted at**: %s\n", tools.FormatTime(thread.Get("created_at").String()))
	fmt.Fprintf(&b, "**Thread ID**: %s\n", thread.Get("id").String())
	b.WriteString("\n---\n\n")

	if content := bodyText(thread); content != "" {
		b.WriteString(content)
		b.WriteString("\n")
	} else {
		b.WriteString("*No content*\n")
	}

	answers := thread.Get("answers").Array()
	comments := thread.Get("comments").Array()

	if len(answers) > 0 {
		fmt.Fprintf(&b, "\n## Answers (%d)\n\n", len(answers))
		for i, answer := range answers {
			accepted := ""
			if answer.Get("is_accepted").Bool() {
				accepted = " ✅ Accepted Answer"
			}
			fmt.Fprintf(&b, "### %d. %s%s\n", i+1, authorName(answer), accepted)
			fmt.Fprintf(&b, "*%s*\n\n%s\n", tools.FormatTime(answer.Get("created_at").String()), bodyText(answer))
		}
	}

	if len(comments) > 0 {
		fmt.Fprintf(&b, "\n## Comments (%d)\n\n", len(comments))
		for i, comment := range comments {
			fmt.Fprintf(&b, "### %d. %s\n", i+1, authorName(comment))
			fmt.Fprintf(&b, "*%s*\n\n%s\n", tools.FormatTime(comment.Get("created_at").String()), bodyText(comment))
		}
	}

	if len(answers) == 0 && len(comments) == 0 {
		b.WriteString("\n*No replies yet*")
	}

	return strings.TrimRight(b.String(), "\n")
}
