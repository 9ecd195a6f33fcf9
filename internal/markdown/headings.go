package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/sitelinks/internal/toc"
)

// ExtractHeadings parses a markdown body (front matter already removed) and
// returns its headings as a flat TOC sequence in document order.
//
// IDs come from explicit `{#id}` attributes when present and from goldmark's
// auto heading IDs otherwise, so repeated titles get distinct anchors.
func ExtractHeadings(body []byte) []toc.Item {
	md := goldmark.New(goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithAttribute(),
	))
	root := md.Parser().Parse(text.NewReader(body))

	items := make([]toc.Item, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		heading, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}

		items = append(items, toc.Item{
			ID:    headingID(heading),
			Level: heading.Level,
			Value: string(bytes.TrimSpace(plainText(heading, body))),
		})
		return gmast.WalkSkipChildren, nil
	})

	return items
}

func headingID(h *gmast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	default:
		return ""
	}
}

// plainText concatenates the literal text below n, dropping emphasis and
// link markup.
func plainText(n gmast.Node, src []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *gmast.Text:
			buf.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(node.Value)
		default:
			buf.Write(plainText(c, src))
		}
	}
	return buf.Bytes()
}
