// Package markup converts Ed Discussion's rich-text storage format into
// plain text. Post bodies arrive as a restricted XML-like dialect
// (<document>, <paragraph>, <bold>, <link>, <list>, ...) which is not
// guaranteed to be well formed, so parsing is tolerant: stray closing
// tags are ignored, unclosed tags are closed implicitly at end of input,
// and unknown tags degrade to their inner text.
package markup

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// ErrInvalidText is returned when the input is not decodable as UTF-8
// text. Malformed markup is never an error.
var ErrInvalidText = errors.New("markup: input is not valid UTF-8 text")

// Node is a single element of a parsed document. A text run has an empty
// Tag and its content in Text; everything else carries the (lowercased)
// tag name, its attributes, and an ordered list of children.
type Node struct {
	Tag      string
	Text     string
	Attrs    map[string]string
	Children []*Node
}

// Attr returns the value of the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[name]
}

// Tags that never hold content, so they never open a context on the
// stack. Covers both the Ed dialect and its HTML spellings.
var voidTags = map[string]bool{
	"break": true,
	"br":    true,
	"hr":    true,
	"img":   true,
	"image": true,
}

// Parse tokenizes the input and builds the document tree. The tokenizer
// never fails on malformed input; it entity-decodes text and lowercases
// tag names for us. Nesting is repaired with a context stack:
//
//   - a closing tag matching a deeper open context implicitly closes
//     everything above it (last-opened-first-closed)
//   - a closing tag matching nothing on the stack is ignored
//   - contexts still open at end of input are closed implicitly
func Parse(input string) *Node {
	root := &Node{Tag: "#root"}
	stack := []*Node{root}

	z := html.NewTokenizer(strings.NewReader(input))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// Only io.EOF is possible when reading from a string.
			return root
		}

		switch tt {
		case html.TextToken:
			text := z.Token().Data
			if text == "" {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{Text: text})

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			node := &Node{Tag: tok.Data}
			for _, a := range tok.Attr {
				if node.Attrs == nil {
					node.Attrs = make(map[string]string, len(tok.Attr))
				}
				node.Attrs[a.Key] = a.Val
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
			if tt == html.StartTagToken && !voidTags[tok.Data] {
				stack = append(stack, node)
			}

		case html.EndTagToken:
			name := z.Token().Data
			for i := len(stack) - 1; i >= 1; i-- {
				if stack[i].Tag == name {
					stack = stack[:i]
					break
				}
			}

		default:
			// Comments and doctypes carry no content.
		}
	}
}

// Normalize renders a markup document as readable plain text. It is a
// pure function: deterministic, stateless, and safe for concurrent use.
// The only failure mode is input that is not valid text.
func Normalize(input string) (string, error) {
	if !utf8.ValidString(input) {
		return "", ErrInvalidText
	}
	out := renderBlocks(Parse(input).Children)
	return strings.TrimSpace(collapseBlankLines(out)), nil
}
