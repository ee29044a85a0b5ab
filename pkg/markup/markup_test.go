package markup

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given well-formed markup", t, func() {
		Convey("Paragraphs with inline styling drop the styling", func() {
			out, err := Normalize("<p>Hello <b>world</b></p>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "Hello world")
		})

		Convey("Ed dialect tags behave like their HTML spellings", func() {
			out, err := Normalize("<document version=\"2.0\"><paragraph>Hello <bold>world</bold></paragraph></document>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "Hello world")
		})

		Convey("Links render as text followed by the target", func() {
			out, err := Normalize(`<p>See <a href="https://x.test">docs</a></p>`)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "See docs (https://x.test)")
		})

		Convey("A link whose text is its target is not repeated", func() {
			out, err := Normalize(`<p><link href="https://x.test">https://x.test</link></p>`)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "https://x.test")
		})

		Convey("Unordered lists get bullets", func() {
			out, err := Normalize("<ul><li>One</li><li>Two</li></ul>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "- One\n- Two")
		})

		Convey("Ordered lists get sequential numbers", func() {
			out, err := Normalize(`<list style="number"><list-item>One</list-item><list-item>Two</list-item></list>`)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "1. One\n2. Two")
		})

		Convey("Paragraphs are separated by a blank line", func() {
			out, err := Normalize("<paragraph>first</paragraph><paragraph>second</paragraph>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "first\n\nsecond")
		})

		Convey("Code blocks are fenced with newlines preserved verbatim", func() {
			out, err := Normalize("<pre>func main() {\n\tfmt.Println(1)\n}</pre>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "```\nfunc main() {\n\tfmt.Println(1)\n}\n```")
		})

		Convey("Tags inside a code block receive no inline processing", func() {
			out, err := Normalize("<pre><bold>x</bold> = 1</pre>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "```\nx = 1\n```")
		})

		Convey("Blank lines inside a code block survive untouched", func() {
			out, err := Normalize("<pre>a\n\n\n\nb</pre>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "```\na\n\n\n\nb\n```")
		})

		Convey("A code block does not stop collapse in surrounding prose", func() {
			out, err := Normalize("<pre>x</pre><p>a<break><break><break>b</p>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "```\nx\n```\n\na\n\nb")
		})

		Convey("Mentions become a readable handle", func() {
			out, err := Normalize(`<p>ping <mention id="42">Jane Doe</mention></p>`)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "ping @Jane Doe")
		})

		Convey("An empty mention falls back to its attributes", func() {
			out, err := Normalize(`<p><mention id="42"></mention></p>`)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "@42")
		})

		Convey("Quotes are prefixed per line", func() {
			out, err := Normalize("<quote><p>first</p><p>second</p></quote>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "> first\n>\n> second")
		})

		Convey("Line breaks become single newlines", func() {
			out, err := Normalize("<p>one<break>two</p>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "one\ntwo")
		})
	})

	Convey("Given malformed or unknown markup", t, func() {
		Convey("Tag-free input comes back trimmed but otherwise unchanged", func() {
			out, err := Normalize("  just some text  ")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "just some text")
		})

		Convey("Entities are decoded", func() {
			out, err := Normalize("<p>a &amp; b &lt;c&gt;&nbsp;d</p>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "a & b <c> d")
		})

		Convey("Unknown tags are transparent", func() {
			out, err := Normalize(`<figure><caption>a chart</caption></figure>`)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "a chart")
		})

		Convey("Unknown tags recurse into known children", func() {
			out, err := Normalize(`<callout-box><p>note <bold>this</bold></p></callout-box>`)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "note this")
		})

		Convey("A stray closing tag is ignored", func() {
			out, err := Normalize("</bold>Hello</p> world")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "Hello world")
		})

		Convey("Unclosed tags are closed implicitly and keep their text", func() {
			out, err := Normalize("<p>Hello <b>world")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "Hello world")
		})

		Convey("Text sitting directly inside a list is kept as an unmarked line", func() {
			out, err := Normalize("<ul>stray text<li>One</li></ul>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "stray text\n- One")
		})

		Convey("Block content between items is kept in order", func() {
			out, err := Normalize("<ul><p>intro</p><li>One</li><li>Two</li></ul>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "intro\n- One\n- Two")
		})

		Convey("Whitespace between items still drops out", func() {
			out, err := Normalize("<ul>\n  <li>One</li>\n  <li>Two</li>\n</ul>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "- One\n- Two")
		})

		Convey("A mismatched close repairs the nesting without dropping text", func() {
			out, err := Normalize("<p><b>bold <i>both</b> after</p>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "bold both after")
		})

		Convey("Runs of blank-producing tags collapse to one blank line", func() {
			out, err := Normalize("<p>a<break><break><break><break>b</p>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "a\n\nb")
		})

		Convey("Empty paragraphs produce no extra separation", func() {
			out, err := Normalize("<p>a</p><p></p><p></p><p></p><p>b</p>")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "a\n\nb")
		})

		Convey("Empty input renders as empty output", func() {
			out, err := Normalize("")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "")
		})
	})

	Convey("Rendering is deterministic", t, func() {
		input := `<document><p>See <a href="https://x.test">docs</a></p><ul><li>One</li><li>Two</li></ul></document>`
		first, err := Normalize(input)
		So(err, ShouldBeNil)
		for i := 0; i < 10; i++ {
			again, err := Normalize(input)
			So(err, ShouldBeNil)
			So(again, ShouldEqual, first)
		}
	})

	Convey("Input that is not valid text is the only failure", t, func() {
		_, err := Normalize("ok so far \xff\xfe not text")
		So(err, ShouldEqual, ErrInvalidText)
	})
}

func TestParse(t *testing.T) {
	Convey("Given a nested document", t, func() {
		root := Parse(`<document><paragraph>hi <bold>there</bold></paragraph></document>`)

		Convey("The tree mirrors the nesting", func() {
			So(len(root.Children), ShouldEqual, 1)
			doc := root.Children[0]
			So(doc.Tag, ShouldEqual, "document")
			So(len(doc.Children), ShouldEqual, 1)
			para := doc.Children[0]
			So(para.Tag, ShouldEqual, "paragraph")
			So(len(para.Children), ShouldEqual, 2)
			So(para.Children[0].Text, ShouldEqual, "hi ")
			So(para.Children[1].Tag, ShouldEqual, "bold")
		})
	})

	Convey("Attributes are captured", t, func() {
		root := Parse(`<link href="https://x.test" target="_blank">x</link>`)
		link := root.Children[0]
		So(link.Attr("href"), ShouldEqual, "https://x.test")
		So(link.Attr("target"), ShouldEqual, "_blank")
		So(link.Attr("missing"), ShouldEqual, "")
	})

	Convey("Void tags never open a context", t, func() {
		root := Parse("a<break>b")
		So(len(root.Children), ShouldEqual, 3)
		So(root.Children[1].Tag, ShouldEqual, "break")
		So(root.Children[2].Text, ShouldEqual, "b")
	})
}
