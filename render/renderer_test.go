package render

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// tocOf returns the TOC div from rendered HTML, or "" when there is none.
func tocOf(t *testing.T, rendered string) string {
	t.Helper()

	start := strings.Index(rendered, `<div id="toc">`)
	if start == -1 {
		return ""
	}
	end := strings.Index(rendered[start:], "</div>")
	if end == -1 {
		t.Fatal("TOC closing div not found")
	}
	return rendered[start : start+end+len("</div>")]
}

func TestTOCEntries(t *testing.T) {
	r := NewHTMLRenderer(WithTOC(true))

	tests := []struct {
		name     string
		markdown string
		want     []string
		notWant  []string
		noTOC    bool
	}{
		{name: "flat h2", markdown: "## First\n\n## Second\n", want: []string{"First", "Second"}},
		{name: "no headings", markdown: "Just a paragraph.\n", noTOC: true},
		{name: "h3 and h4 without h2", markdown: "### A\n\n#### B\n", noTOC: true},
		{name: "h1 excluded", markdown: "# Title\n\n## Section\n\n### Sub\n", want: []string{"Section", "Sub"}, notWant: []string{"Title"}},
		{name: "orphan h3 dropped", markdown: "### Orphan\n\n## Section\n\n### Sub\n", want: []string{"Section", "Sub"}, notWant: []string{"Orphan"}},
		{name: "orphan h4 dropped", markdown: "## Section\n\n#### Deep\n\n### Normal Sub\n", want: []string{"Normal Sub"}, notWant: []string{"Deep"}},
		{name: "inline markup flattened", markdown: "## **Bold** heading\n\n## Normal\n", want: []string{"Bold heading"}},
		{name: "links to heading ids", markdown: "## Hello World\n", want: []string{`href="#hello-world"`}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rendered, err := r.Render(tc.markdown, false)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}

			toc := tocOf(t, rendered)
			if tc.noTOC {
				if toc != "" {
					t.Errorf("expected no TOC, got %s", toc)
				}
				return
			}
			if toc == "" {
				t.Fatalf("expected a TOC in %s", rendered)
			}
			for _, w := range tc.want {
				if !strings.Contains(toc, w) {
					t.Errorf("expected %q in TOC %s", w, toc)
				}
			}
			for _, w := range tc.notWant {
				if strings.Contains(toc, w) {
					t.Errorf("did not expect %q in TOC %s", w, toc)
				}
			}
		})
	}
}

func TestBuildTOCTreeNesting(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		`<h2 id="one">One</h2><h3 id="a">A</h3><h4 id="deep">Deep</h4><h3 id="b">B</h3><h2 id="two">Two</h2>`))
	if err != nil {
		t.Fatal(err)
	}

	var headings []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if headingLevel(n) > 0 {
			headings = append(headings, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	tree := buildTOCTree(headings)

	if len(tree) != 2 || tree[0].ID != "one" || tree[1].ID != "two" {
		t.Fatalf("unexpected top level: %+v", tree)
	}
	if len(tree[0].Children) != 2 || tree[0].Children[0].Text != "A" || tree[0].Children[1].Text != "B" {
		t.Fatalf("unexpected h3 level: %+v", tree[0].Children)
	}
	if len(tree[0].Children[0].Children) != 1 || tree[0].Children[0].Children[0].ID != "deep" {
		t.Errorf("expected Deep under A, got %+v", tree[0].Children[0].Children)
	}
	if len(tree[1].Children) != 0 {
		t.Errorf("expected Two to have no children, got %+v", tree[1].Children)
	}
}

func TestTOCRenderedNesting(t *testing.T) {
	r := NewHTMLRenderer(WithTOC(true))

	rendered, err := r.Render("## Section One\n\n### Sub One\n\n#### Deep\n\n## Section Two\n", false)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	toc := tocOf(t, rendered)
	before := toc[:strings.Index(toc, "Deep")]
	if n := strings.Count(before, "<ol>"); n != 3 {
		t.Errorf("expected Deep three lists deep, found %d <ol> before it", n)
	}
}

func TestTOCDisabledByDefault(t *testing.T) {
	r := NewHTMLRenderer()

	html, err := r.Render("## One\n\n## Two\n", false)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(html, `id="toc"`) {
		t.Error("expected no TOC when the option is off")
	}
}

func TestTOCSkipped(t *testing.T) {
	r := NewHTMLRenderer(WithTOC(true))

	html, err := r.Render("## One\n\n## Two\n", true)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(html, `id="toc"`) {
		t.Error("expected no TOC when skipped by the caller")
	}
}

func TestTOCOutputIsFragment(t *testing.T) {
	r := NewHTMLRenderer(WithTOC(true))

	html, err := r.Render("## One\n\nText\n", false)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, tag := range []string{"<html>", "<head>", "<body>"} {
		if strings.Contains(html, tag) {
			t.Errorf("expected fragment output, found %s in %s", tag, html)
		}
	}
	if strings.Index(html, `id="toc"`) > strings.Index(html, "<h2") {
		t.Error("expected TOC before the first h2")
	}
}

func TestRenderMarkdown(t *testing.T) {
	r := NewHTMLRenderer()

	tests := []struct {
		name     string
		markdown string
		contains string
	}{
		{"paragraph", "This is a paragraph.", "<p>This is a paragraph.</p>"},
		{"bold", "**bold**", "<strong>bold</strong>"},
		{"heading id", "## Hello World", `<h2 id="hello-world">Hello World</h2>`},
		{"link", "[example](https://example.com)", `<a href="https://example.com">example</a>`},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
		{"footnote reference", "Text[^1]\n\n[^1]: The note.", "footnote-ref"},
		{"footnote body", "Text[^1]\n\n[^1]: The note.", "The note."},
		{"utf-8", "Blåbær ☃", "Blåbær ☃"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			html, err := r.Render(tc.markdown, false)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if !strings.Contains(html, tc.contains) {
				t.Errorf("expected HTML to contain %q, got: %s", tc.contains, html)
			}
		})
	}
}
