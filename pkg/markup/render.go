package markup

import (
	"fmt"
	"strings"
)

// renderRule turns one known tag into plain text. Rules for new tags are
// added to the table below; anything absent falls back to the transparent
// default in walk, which emits the node's inner text with no markers.
type renderRule func(w *writer, n *Node)

var rules map[string]renderRule

func init() {
	// Built in init so rules can recurse through renderBlocks.
	rules = map[string]renderRule{
		"document":  blockContainer,
		"paragraph": blockContainer,
		"p":         blockContainer,
		"div":       blockContainer,
		"heading":   blockContainer,
		"h1":        blockContainer,
		"h2":        blockContainer,
		"h3":        blockContainer,
		"h4":        blockContainer,
		"h5":        blockContainer,
		"h6":        blockContainer,

		"break": lineBreak,
		"br":    lineBreak,

		"pre":     codeBlock,
		"snippet": codeBlock,

		"list": list,
		"ul":   list,
		"ol":   list,

		"quote":      quote,
		"blockquote": quote,
		"callout":    quote,

		"link": link,
		"a":    link,

		"mention": mention,
	}
}

// writer accumulates rendered output as a sequence of blocks. Inline
// content gathers in cur until a block-level rule flushes it.
type writer struct {
	blocks []string
	cur    strings.Builder
}

func (w *writer) text(s string) {
	w.cur.WriteString(s)
}

func (w *writer) block(s string) {
	w.flush()
	if strings.TrimSpace(s) != "" {
		w.blocks = append(w.blocks, s)
	}
}

func (w *writer) flush() {
	s := strings.TrimSpace(w.cur.String())
	w.cur.Reset()
	if s != "" {
		w.blocks = append(w.blocks, s)
	}
}

func (w *writer) String() string {
	w.flush()
	return strings.Join(w.blocks, "\n\n")
}

// walk renders a node list into w. Unknown tags are transparent: their
// children are spliced into the current context unchanged.
func walk(w *writer, nodes []*Node) {
	for _, n := range nodes {
		if n.Tag == "" {
			w.text(n.Text)
			continue
		}
		if rule, ok := rules[n.Tag]; ok {
			rule(w, n)
			continue
		}
		walk(w, n.Children)
	}
}

// renderBlocks renders a node list standalone, blocks separated by a
// blank line.
func renderBlocks(nodes []*Node) string {
	w := &writer{}
	walk(w, nodes)
	return w.String()
}

func blockContainer(w *writer, n *Node) {
	w.block(renderBlocks(n.Children))
}

func lineBreak(w *writer, n *Node) {
	w.text("\n")
}

// codeBlock emits the raw inner text fenced, newlines preserved verbatim.
// No inline processing happens inside: every descendant text run is taken
// as-is, tags inside the block contribute nothing but their text.
func codeBlock(w *writer, n *Node) {
	code := strings.Trim(rawText(n), "\n")
	w.block("```\n" + code + "\n```")
}

func rawText(n *Node) string {
	var b strings.Builder
	var collect func(*Node)
	collect = func(n *Node) {
		if n.Tag == "" {
			b.WriteString(n.Text)
			return
		}
		for _, c := range n.Children {
			collect(c)
		}
	}
	for _, c := range n.Children {
		collect(c)
	}
	return b.String()
}

// list renders items with bullets or sequential numbers. Ordered lists
// are recognized by tag name or by Ed's style attribute. Continuation
// lines of multi-line items (nested lists included) are indented under
// the marker.
func list(w *writer, n *Node) {
	ordered := n.Tag == "ol"
	switch n.Attr("style") {
	case "number", "ordered", "decimal":
		ordered = true
	}

	var lines []string
	num := 0

	// Content sitting directly inside the list without an item wrapper is
	// kept as unmarked lines. Whitespace-only runs between items drop out
	// in renderBlocks.
	var loose []*Node
	flushLoose := func() {
		if len(loose) == 0 {
			return
		}
		body := renderBlocks(loose)
		loose = nil
		if body == "" {
			return
		}
		lines = append(lines, strings.Split(body, "\n")...)
	}

	for _, c := range n.Children {
		if c.Tag != "list-item" && c.Tag != "li" {
			loose = append(loose, c)
			continue
		}
		flushLoose()
		body := renderBlocks(c.Children)
		if body == "" {
			continue
		}
		num++
		marker := "- "
		if ordered {
			marker = fmt.Sprintf("%d. ", num)
		}
		for i, line := range strings.Split(body, "\n") {
			if i == 0 {
				lines = append(lines, marker+line)
			} else {
				lines = append(lines, "  "+line)
			}
		}
	}
	flushLoose()
	w.block(strings.Join(lines, "\n"))
}

func quote(w *writer, n *Node) {
	body := renderBlocks(n.Children)
	if body == "" {
		return
	}
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight("> "+line, " ")
	}
	w.block(strings.Join(lines, "\n"))
}

// link renders as "text (href)". A link with no text collapses to the
// bare target, and a link whose text already is the target is not
// repeated.
func link(w *writer, n *Node) {
	text := strings.TrimSpace(renderBlocks(n.Children))
	href := n.Attr("href")
	if href == "" {
		href = n.Attr("url")
	}
	switch {
	case text == "" && href == "":
	case text == "":
		w.text(href)
	case href == "" || href == text:
		w.text(text)
	default:
		w.text(text + " (" + href + ")")
	}
}

// mention renders a stable human-readable handle for a user reference.
func mention(w *writer, n *Node) {
	handle := strings.TrimSpace(rawText(n))
	if handle == "" {
		handle = n.Attr("name")
	}
	if handle == "" {
		handle = n.Attr("id")
	}
	if handle == "" {
		handle = "unknown"
	}
	handle = strings.TrimPrefix(handle, "@")
	w.text("@" + handle)
}

// collapseBlankLines reduces runs of consecutive blank lines to exactly
// one blank line. Fenced code is left alone: its lines pass through
// verbatim, blank lines included.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	inFence := false
	blanks := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "```" {
			inFence = !inFence
		}
		if !inFence && strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 1 {
				continue
			}
			out = append(out, "")
			continue
		}
		blanks = 0
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
