package service

import (
	"html"

	"github.com/danielledeleo/gitleaf/blog"
	"github.com/danielledeleo/gitleaf/templater"
)

// ArticleRenderer renders an article body into the article template.
type ArticleRenderer struct {
	templates *templater.Templater
	rendering RenderingService
}

func NewArticleRenderer(templates *templater.Templater, rendering RenderingService) *ArticleRenderer {
	return &ArticleRenderer{templates: templates, rendering: rendering}
}

// Render converts markdown and binds it, the title and the provenance
// timestamps into the article template.
func (a *ArticleRenderer) Render(title, markdown string, prov blog.Provenance) (string, error) {
	tmpl, err := a.templates.Load(templater.ArticleTemplate)
	if err != nil {
		return "", err
	}

	text, err := a.rendering.Render(markdown)
	if err != nil {
		return "", err
	}

	return templater.Render(tmpl, map[string]string{
		"title":            html.EscapeString(title),
		"text":             text,
		"ctime":            blog.FormatTimestamp(prov.Created),
		"ctime_visibility": blog.Visibility(prov.Created),
		"mtime":            blog.FormatTimestamp(prov.Modified),
		"mtime_visibility": blog.Visibility(prov.Modified),
	}), nil
}

// PageRenderer composes the outer page.
type PageRenderer struct {
	templates *templater.Templater
}

func NewPageRenderer(templates *templater.Templater) *PageRenderer {
	return &PageRenderer{templates: templates}
}

// Render binds the title, the rendered article and the menu into the page
// template.
func (p *PageRenderer) Render(title, article, menu string) (string, error) {
	tmpl, err := p.templates.Load(templater.PageTemplate)
	if err != nil {
		return "", err
	}

	return templater.Render(tmpl, map[string]string{
		"title":   html.EscapeString(title),
		"article": article,
		"menu":    menu,
	}), nil
}
