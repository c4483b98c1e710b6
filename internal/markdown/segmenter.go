package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-landing/segments"
)

// Segmenter turns a markdown body into ordered element lists, one per
// top-level block. It holds no per-call state and can be shared.
type Segmenter struct {
	engine goldmark.Markdown
}

func NewSegmenter() *Segmenter {
	return &Segmenter{
		engine: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Split returns the element list of each top-level block in document order.
// Blocks without visible content, such as thematic breaks, are skipped.
func (s *Segmenter) Split(body []byte) [][]segments.Element {
	doc := s.engine.Parser().Parse(text.NewReader(body))

	var blocks [][]segments.Element
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		elements := blockElements(node, body)
		if len(elements) == 0 {
			continue
		}
		blocks = append(blocks, elements)
	}
	return blocks
}

func blockElements(node ast.Node, source []byte) []segments.Element {
	w := &elementWriter{}
	switch n := node.(type) {
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.add(segments.ElementCode, strings.TrimRight(blockLines(n, source), "\n"), "")
	case *ast.ThematicBreak:
		return nil
	default:
		w.walkBlock(node, source)
	}
	return w.elements
}

func blockLines(node ast.Node, source []byte) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(source))
	}
	return sb.String()
}

type elementWriter struct {
	elements []segments.Element
}

// add appends an element, merging adjacent plain text.
func (w *elementWriter) add(kind, value, href string) {
	if value == "" && kind != segments.ElementBreak {
		return
	}
	if kind == segments.ElementText && len(w.elements) > 0 {
		last := &w.elements[len(w.elements)-1]
		if last.Kind == segments.ElementText {
			last.Text += value
			return
		}
	}
	w.elements = append(w.elements, segments.Element{Kind: kind, Text: value, Href: href})
}

func (w *elementWriter) walkBlock(node ast.Node, source []byte) {
	if node.Type() == ast.TypeInline {
		w.walkInline(node, source)
		return
	}
	first := true
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() == ast.TypeBlock && !first {
			w.add(segments.ElementBreak, "", "")
		}
		if child.Type() == ast.TypeBlock {
			first = false
		}
		w.walkBlock(child, source)
	}
}

func (w *elementWriter) walkInline(node ast.Node, source []byte) {
	switch n := node.(type) {
	case *ast.Text:
		w.add(segments.ElementText, string(n.Segment.Value(source)), "")
		if n.HardLineBreak() {
			w.add(segments.ElementBreak, "", "")
		} else if n.SoftLineBreak() {
			w.add(segments.ElementText, " ", "")
		}
	case *ast.String:
		w.add(segments.ElementText, string(n.Value), "")
	case *ast.Emphasis:
		kind := segments.ElementEmphasis
		if n.Level >= 2 {
			kind = segments.ElementStrong
		}
		w.add(kind, inlineText(n, source), "")
	case *ast.CodeSpan:
		w.add(segments.ElementCode, inlineText(n, source), "")
	case *ast.Link:
		w.add(segments.ElementLink, inlineText(n, source), string(n.Destination))
	case *ast.AutoLink:
		w.add(segments.ElementLink, string(n.Label(source)), string(n.URL(source)))
	case *ast.Image, *ast.RawHTML:
	default:
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			w.walkInline(child, source)
		}
	}
}

// inlineText flattens the text content below node.
func inlineText(node ast.Node, source []byte) string {
	var sb strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		switch v := n.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				sb.WriteByte(' ')
			}
			return
		case *ast.String:
			sb.Write(v.Value)
			return
		}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			walk(child)
		}
	}
	walk(node)
	return strings.TrimSpace(sb.String())
}
