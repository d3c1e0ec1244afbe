package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/danielledeleo/gitleaf/blog"
	"github.com/danielledeleo/gitleaf/history"
	"github.com/danielledeleo/gitleaf/templater"
)

// PageService defines the interface for rendering article pages.
type PageService interface {
	// Resolve renders the article named by an escaped request token, as
	// found in menu links. An empty token selects the default article.
	Resolve(ctx context.Context, escaped string) (*blog.Page, error)

	// Render renders the article with the given literal name. An empty name
	// selects the default article.
	Render(ctx context.Context, name string) (*blog.Page, error)
}

// PageOptions wires a PageService.
type PageOptions struct {
	// Articles is rooted at the article directory.
	Articles fs.FS
	// ArticlesDir is the on-disk location of Articles, used for history
	// lookups.
	ArticlesDir    string
	History        *history.Resolver
	Templates      *templater.Templater
	Rendering      RenderingService
	Rules          blog.NameRules
	DefaultArticle string
	NotFoundTitle  string
}

// pageService is the default implementation of PageService.
type pageService struct {
	articles       fs.FS
	articlesDir    string
	history        *history.Resolver
	templates      *templater.Templater
	menu           *MenuBuilder
	article        *ArticleRenderer
	page           *PageRenderer
	rules          blog.NameRules
	defaultArticle string
	notFoundTitle  string
}

// NewPageService creates a new PageService. The not-found title is checked
// against the name rules like any other article name.
func NewPageService(opts PageOptions) (PageService, error) {
	if !opts.Rules.Valid(opts.NotFoundTitle) {
		return nil, fmt.Errorf("not-found title %q: %w", opts.NotFoundTitle, blog.ErrInvalidName)
	}

	return &pageService{
		articles:       opts.Articles,
		articlesDir:    opts.ArticlesDir,
		history:        opts.History,
		templates:      opts.Templates,
		menu:           NewMenuBuilder(opts.Templates, opts.Rules),
		article:        NewArticleRenderer(opts.Templates, opts.Rendering),
		page:           NewPageRenderer(opts.Templates),
		rules:          opts.Rules,
		defaultArticle: opts.DefaultArticle,
		notFoundTitle:  opts.NotFoundTitle,
	}, nil
}

func (s *pageService) Resolve(ctx context.Context, escaped string) (*blog.Page, error) {
	names, err := s.listArticles()
	if err != nil {
		return nil, err
	}

	name := s.defaultArticle
	if escaped != "" {
		name = blog.ResolveEscapedName(escaped, names, s.rules)
	}

	return s.render(ctx, name, names)
}

func (s *pageService) Render(ctx context.Context, name string) (*blog.Page, error) {
	names, err := s.listArticles()
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = s.defaultArticle
	}

	return s.render(ctx, name, names)
}

func (s *pageService) listArticles() ([]string, error) {
	entries, err := fs.ReadDir(s.articles, ".")
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *pageService) render(ctx context.Context, name string, names []string) (*blog.Page, error) {
	markdown, err := s.readArticle(name)
	if errors.Is(err, blog.ErrInvalidName) || errors.Is(err, blog.ErrArticleNotFound) {
		slog.Debug("article not found", "category", "article", "action", "view", "article", name, "reason", err.Error())
		return s.renderNotFound(names)
	}
	if err != nil {
		return nil, err
	}

	prov, err := s.history.Resolve(ctx, filepath.Join(s.articlesDir, name))
	if err != nil {
		return nil, fmt.Errorf("history of %s: %w", name, err)
	}

	title := name
	if fm, _ := blog.ParseFrontmatter(markdown); fm.DisplayTitle != "" {
		title = fm.DisplayTitle
	}

	articleHTML, err := s.article.Render(title, markdown, prov)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}

	menu, err := s.menu.Build(names, name)
	if err != nil {
		return nil, err
	}

	page, err := s.page.Render(title, articleHTML, menu)
	if err != nil {
		return nil, err
	}

	slog.Debug("article viewed", "category", "article", "action", "view", "article", name)
	return &blog.Page{Name: name, Title: title, HTML: page, Outcome: blog.Found}, nil
}

// readArticle returns the markdown source of a valid, existing article.
// No file is touched unless name passes validation.
func (s *pageService) readArticle(name string) (string, error) {
	if !s.rules.Valid(name) {
		return "", blog.ErrInvalidName
	}

	info, err := fs.Stat(s.articles, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", blog.ErrArticleNotFound
	}
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", blog.ErrArticleNotFound
	}

	data, err := fs.ReadFile(s.articles, name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

// renderNotFound renders the fixed not-found page. It never shows
// timestamps.
func (s *pageService) renderNotFound(names []string) (*blog.Page, error) {
	content, err := s.templates.Load(templater.NotFoundContent)
	if err != nil {
		return nil, err
	}

	articleHTML, err := s.article.Render(s.notFoundTitle, content, blog.Provenance{})
	if err != nil {
		return nil, err
	}

	menu, err := s.menu.Build(names, s.notFoundTitle)
	if err != nil {
		return nil, err
	}

	page, err := s.page.Render(s.notFoundTitle, articleHTML, menu)
	if err != nil {
		return nil, err
	}

	return &blog.Page{Title: s.notFoundTitle, HTML: page, Outcome: blog.NotFound}, nil
}
