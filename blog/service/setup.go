package service

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/danielledeleo/gitleaf/blog"
	"github.com/danielledeleo/gitleaf/history"
	"github.com/danielledeleo/gitleaf/render"
	"github.com/danielledeleo/gitleaf/templater"
	"github.com/microcosm-cc/bluemonday"
)

// History backends accepted in blog.Config.History.
const (
	HistoryGit  = "git"
	HistoryNone = "none"
)

// NewFromConfig wires a PageService from configuration. content supplies the
// templates.
func NewFromConfig(cfg *blog.Config, content fs.FS) (PageService, error) {
	articlesDir := cfg.ArticlesPath()

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}

	var log history.Log
	switch cfg.History {
	case HistoryGit, "":
		log = history.NewGitLog(articlesDir)
	case HistoryNone:
		log = history.NoLog{}
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.History)
	}

	var sanitizer *bluemonday.Policy
	if cfg.Sanitize {
		sanitizer = NewSanitizer()
	}

	renderer := render.NewHTMLRenderer(render.WithTOC(cfg.TOC))

	return NewPageService(PageOptions{
		Articles:       os.DirFS(articlesDir),
		ArticlesDir:    articlesDir,
		History:        history.NewResolver(log, loc),
		Templates:      templater.New(content),
		Rendering:      NewRenderingService(renderer, sanitizer),
		Rules:          cfg.NameRules(),
		DefaultArticle: cfg.DefaultArticle,
		NotFoundTitle:  cfg.NotFoundTitle,
	})
}
