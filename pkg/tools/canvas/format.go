package canvas

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/tidwall/gjson"

	"github.com/campuskit/mcp-server-edu-bridge/pkg/tools"
)

// maxMessageRunes caps announcement bodies in list output.
const maxMessageRunes = 500

// htmlToText converts a Canvas rich-text body (HTML) into readable
// Markdown text. Conversion failures fall back to the raw input.
func htmlToText(html string) string {
	if html == "" {
		return ""
	}
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.TrimSpace(markdown)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func formatCourses(courses gjson.Result) string {
	items := courses.Array()
	if len(items) == 0 {
		return "No Canvas courses found."
	}

	var b strings.Builder
	b.WriteString("# My Canvas Courses\n\n")
	fmt.Fprintf(&b, "*Total %d courses*\n\n", len(items))

	for i, course := range items {
		name := course.Get("name").String()
		if name == "" {
			name = "Unnamed Course"
		}
		fmt.Fprintf(&b, "## %d. %s\n", i+1, name)
		if code := course.Get("course_code").String(); code != "" {
			fmt.Fprintf(&b, "- **Course Code**: %s\n", code)
		}
		fmt.Fprintf(&b, "- **Course ID**: %s\n\n", course.Get("id").String())
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatCourseDetail(course gjson.Result) string {
	name := course.Get("name").String()
	if name == "" {
		name = "Unnamed Course"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	if code := course.Get("course_code").String(); code != "" {
		fmt.Fprintf(&b, "**Course Code**: %s\n", code)
	}
	fmt.Fprintf(&b, "**Course ID**: %s\n", course.Get("id").String())

	if teachers := course.Get("teachers").Array(); len(teachers) > 0 {
		names := make([]string, 0, len(teachers))
		for _, t := range teachers {
			names = append(names, t.Get("display_name").String())
		}
		fmt.Fprintf(&b, "**Teachers**: %s\n", strings.Join(names, ", "))
	}

	if syllabus := course.Get("syllabus_body").String(); syllabus != "" {
		fmt.Fprintf(&b, "\n## Syllabus\n%s\n", htmlToText(syllabus))
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatAnnouncements(announcements gjson.Result, courseName string) string {
	items := announcements.Array()
	if len(items) == 0 {
		if courseName != "" {
			return fmt.Sprintf("Course %s has no announcements.", courseName)
		}
		return "No announcements."
	}

	var b strings.Builder
	if courseName != "" {
		fmt.Fprintf(&b, "# %s - Announcements\n\n", courseName)
	} else {
		b.WriteString("# Course Announcements\n\n")
	}
	fmt.Fprintf(&b, "*Total %d announcements*\n\n", len(items))

	for i, ann := range items {
		title := ann.Get("title").String()
		if title == "" {
			title = "No Title"
		}
		author := ann.Get("author.display_name").String()
		if author == "" {
			author = "Unknown"
		}
		message := truncate(htmlToText(ann.Get("message").String()), maxMessageRunes)

		fmt.Fprintf(&b, "## %d. %s\n", i+1, title)
		fmt.Fprintf(&b, "- **Posted by**: %s\n", author)
		fmt.Fprintf(&b, "- **Posted at**: %s\n", tools.FormatTime(ann.Get("posted_at").String()))
		fmt.Fprintf(&b, "\n%s\n\n---\n\n", message)
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatAssignments(assignments gjson.Result, courseName string) string {
	items := assignments.Array()
	if len(items) == 0 {
		if courseName != "" {
			return fmt.Sprintf("Course %s has no assignments.", courseName)
		}
		return "No assignments."
	}

	var b strings.Builder
	if courseName != "" {
		fmt.Fprintf(&b, "# %s - Assignment List\n\n", courseName)
	} else {
		b.WriteString("# Assignment List\n\n")
	}
	fmt.Fprintf(&b, "*Total %d assignments*\n\n", len(items))

	for i, assignment := range items {
		name := assignment.Get("name").String()
		if name == "" {
			name = "Unnamed Assignment"
		}
		fmt.Fprintf(&b, "## %d. %s\n", i+1, name)
		fmt.Fprintf(&b, "- **Assignment ID**: %s\n", assignment.Get("id").String())
		fmt.Fprintf(&b, "- **Due Date**: %s\n", tools.FormatTime(assignment.Get("due_at").String()))
		fmt.Fprintf(&b, "- **Points**: %s\n", assignment.Get("points_possible").String())
		if sub := assignment.Get("submission"); sub.Exists() {
			state := sub.Get("workflow_state").String()
			if state == "" {
				state = "unsubmitted"
			}
			fmt.Fprintf(&b, "- **Submission**: %s\n", state)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
