package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

const tocTemplate = `{{define "entries"}}<ol>{{range .}}<li><a href="#{{.ID}}">{{.Text}}</a>{{if .Children}}{{template "entries" .Children}}{{end}}</li>{{end}}</ol>{{end}}` +
	`<div id="toc"><p class="toc-title">Contents</p>{{template "entries" .Entries}}</div>`

var tocTmpl = template.Must(template.New("toc").Parse(tocTemplate))

// HTMLRenderer converts markdown to HTML.
type HTMLRenderer struct {
	md  goldmark.Markdown
	toc bool
}

// Option configures an HTMLRenderer.
type Option func(*HTMLRenderer)

// WithTOC enables the table of contents for articles with h2 headings.
func WithTOC(enabled bool) Option {
	return func(r *HTMLRenderer) { r.toc = enabled }
}

// TOCEntry represents a heading in the table of contents.
type TOCEntry struct {
	ID       string
	Text     string
	Children []TOCEntry
}

// buildTOCTree constructs a nested TOC from a flat list of heading nodes.
// Expects h2, h3, and h4 nodes. h2 is top-level, h3 nests under h2, h4 under h3.
// Headings that appear before a parent of the expected level are dropped
// (e.g. an h3 before any h2 is not included).
func buildTOCTree(nodes []*html.Node) []TOCEntry {
	var root []TOCEntry

	for _, n := range nodes {
		level := headingLevel(n)
		if level < 2 || level > 4 {
			continue
		}

		entry := TOCEntry{
			ID:   getAttr(n, "id"),
			Text: textContent(n),
		}

		switch level {
		case 2:
			root = append(root, entry)
		case 3:
			if len(root) > 0 {
				root[len(root)-1].Children = append(root[len(root)-1].Children, entry)
			}
		case 4:
			if len(root) > 0 {
				parent := &root[len(root)-1]
				if len(parent.Children) > 0 {
					parent.Children[len(parent.Children)-1].Children = append(
						parent.Children[len(parent.Children)-1].Children, entry)
				}
			}
		}
	}

	return root
}

func headingLevel(n *html.Node) int {
	switch n.DataAtom {
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	default:
		return 0
	}
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

// NewHTMLRenderer creates a new HTMLRenderer with footnotes, tables and
// automatic heading IDs enabled.
func NewHTMLRenderer(opts ...Option) *HTMLRenderer {
	r := &HTMLRenderer{
		md: goldmark.New(
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithExtensions(
				extension.Table,
				extension.Footnote,
			),
		),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render converts markdown to HTML. The table of contents is only inserted
// when enabled on the renderer and not skipped by the caller.
func (r *HTMLRenderer) Render(md string, skipTOC bool) (string, error) {
	buf := &bytes.Buffer{}

	if err := r.md.Convert([]byte(md), buf); err != nil {
		return "", fmt.Errorf("failed to Convert: %w", err)
	}
	rawhtml := buf.String()

	if !r.toc || skipTOC {
		return rawhtml, nil
	}

	return insertTOC(rawhtml)
}

// insertTOC places a table of contents before the first h2. The input is
// returned untouched when there is nothing to list.
func insertTOC(rawhtml string) (string, error) {
	root, err := html.Parse(strings.NewReader(rawhtml))
	if err != nil {
		return "", err
	}

	document := goquery.NewDocumentFromNode(root)

	headers := document.Find("h2, h3, h4")
	if headers.Length() == 0 {
		return rawhtml, nil
	}

	var nodes []*html.Node
	headers.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, s.Nodes[0])
	})
	tocTree := buildTOCTree(nodes)

	if len(tocTree) == 0 {
		return rawhtml, nil
	}

	outbuf := &bytes.Buffer{}
	if err := tocTmpl.Execute(outbuf, map[string]any{"Entries": tocTree}); err != nil {
		return "", err
	}

	fakeBody := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}

	newnodes, err := html.ParseFragment(outbuf, fakeBody)
	if err != nil {
		return "", err
	}

	// Find the TOC div element among parsed fragment nodes (skip whitespace text nodes).
	var tocNode *html.Node
	for _, n := range newnodes {
		if n.Type == html.ElementNode {
			tocNode = n
			break
		}
	}
	if tocNode == nil {
		return rawhtml, nil
	}

	firstH2 := document.Find("h2").Nodes[0]
	firstH2.Parent.InsertBefore(tocNode, firstH2)

	// html.Parse wraps the fragment in html/head/body; only the body
	// children belong to the article.
	body := document.Find("body")
	if body.Length() == 0 {
		return rawhtml, nil
	}

	outbuf.Reset()
	for c := body.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(outbuf, c); err != nil {
			return "", err
		}
	}

	return outbuf.String(), nil
}
