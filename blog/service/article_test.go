package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/danielledeleo/gitleaf/blog"
	"github.com/danielledeleo/gitleaf/blog/service"
	"github.com/danielledeleo/gitleaf/render"
)

func newRendering() service.RenderingService {
	return service.NewRenderingService(render.NewHTMLRenderer(), service.NewSanitizer())
}

func TestArticleRenderTimestamps(t *testing.T) {
	a := service.NewArticleRenderer(testTemplates(), newRendering())

	created := time.Date(2021, 4, 5, 6, 7, 0, 0, time.UTC)
	modified := time.Date(2021, 10, 11, 21, 3, 0, 0, time.UTC)

	tests := []struct {
		name     string
		prov     blog.Provenance
		contains []string
	}{
		{
			name: "both present",
			prov: blog.Provenance{Created: &created, Modified: &modified},
			contains: []string{
				`<c class="visible">2021/04/05&nbsp;06:07</c>`,
				`<m class="visible">2021/10/11&nbsp;21:03</m>`,
			},
		},
		{
			name: "created only",
			prov: blog.Provenance{Created: &created},
			contains: []string{
				`<c class="visible">2021/04/05&nbsp;06:07</c>`,
				`<m class="hidden"></m>`,
			},
		},
		{
			name: "untracked",
			prov: blog.Provenance{},
			contains: []string{
				`<c class="hidden"></c>`,
				`<m class="hidden"></m>`,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			html, err := a.Render("Title", "Body", tc.prov)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			for _, want := range tc.contains {
				if !strings.Contains(html, want) {
					t.Errorf("expected %q in %s", want, html)
				}
			}
		})
	}
}

func TestArticleRenderMarkdown(t *testing.T) {
	a := service.NewArticleRenderer(testTemplates(), newRendering())

	html, err := a.Render("Notes", "Some *text*.[^1]\n\n[^1]: A footnote.", blog.Provenance{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.HasPrefix(html, "<h1>Notes</h1>") {
		t.Errorf("expected title heading, got %s", html)
	}
	if !strings.Contains(html, "<em>text</em>") {
		t.Errorf("expected converted markdown, got %s", html)
	}
	if !strings.Contains(html, "A footnote.") || !strings.Contains(html, "footnote-ref") {
		t.Errorf("expected footnote markup, got %s", html)
	}
}

func TestArticleRenderEscapesTitle(t *testing.T) {
	a := service.NewArticleRenderer(testTemplates(), newRendering())

	html, err := a.Render("Tom & <Jerry>", "Body", blog.Provenance{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(html, "<h1>Tom &amp; &lt;Jerry&gt;</h1>") {
		t.Errorf("expected escaped title, got %s", html)
	}
}

func TestRenderingSanitizesHTML(t *testing.T) {
	r := newRendering()

	html, err := r.Render("Hello <script>alert(1)</script> <a href=\"javascript:alert(1)\">x</a>")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, "<script>") || strings.Contains(html, "javascript:") {
		t.Errorf("expected sanitized output, got %s", html)
	}
}

func TestRenderingStripsFrontmatter(t *testing.T) {
	r := newRendering()

	html, err := r.Render("---\ndisplay_title: Shown Elsewhere\n---\nBody text")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, "display_title") {
		t.Errorf("expected frontmatter stripped, got %s", html)
	}
	if !strings.Contains(html, "<p>Body text</p>") {
		t.Errorf("expected body, got %s", html)
	}
}

func TestRenderingTOCOptOut(t *testing.T) {
	r := service.NewRenderingService(render.NewHTMLRenderer(render.WithTOC(true)), service.NewSanitizer())

	withTOC, err := r.Render("## One\n\n## Two\n")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(withTOC, `id="toc"`) {
		t.Errorf("expected TOC to survive sanitizing, got %s", withTOC)
	}

	without, err := r.Render("---\ntoc: false\n---\n## One\n\n## Two\n")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(without, `id="toc"`) {
		t.Errorf("expected no TOC, got %s", without)
	}
}

func TestPageRender(t *testing.T) {
	p := service.NewPageRenderer(testTemplates())

	html, err := p.Render("Hello world", "<p>body</p>", "<a>menu</a>")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "<title>Hello world</title><nav><a>menu</a></nav><main><p>body</p></main>"
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}
