package service

import (
	"github.com/danielledeleo/gitleaf/blog"
	"github.com/danielledeleo/gitleaf/render"
	"github.com/microcosm-cc/bluemonday"
)

// RenderingService defines the interface for rendering markdown content.
type RenderingService interface {
	// Render converts markdown to HTML, sanitized when a policy is set.
	Render(markdown string) (string, error)
}

// renderingService is the default implementation of RenderingService.
type renderingService struct {
	renderer  *render.HTMLRenderer
	sanitizer *bluemonday.Policy
}

// NewRenderingService creates a new RenderingService. A nil sanitizer leaves
// the converted HTML untouched.
func NewRenderingService(renderer *render.HTMLRenderer, sanitizer *bluemonday.Policy) RenderingService {
	return &renderingService{
		renderer:  renderer,
		sanitizer: sanitizer,
	}
}

// Render converts markdown to HTML.
func (s *renderingService) Render(markdown string) (string, error) {
	// Strip frontmatter before rendering
	fm, content := blog.ParseFrontmatter(markdown)

	unsafe, err := s.renderer.Render(content, fm.SkipTOC())
	if err != nil {
		return "", err
	}

	if s.sanitizer == nil {
		return unsafe, nil
	}
	return s.sanitizer.Sanitize(unsafe), nil
}

// NewSanitizer returns the policy applied to converted articles: user
// generated content plus the attributes used by footnotes and the table of
// contents.
func NewSanitizer() *bluemonday.Policy {
	bm := bluemonday.UGCPolicy()
	bm.AllowAttrs("class").Globally()
	bm.AllowAttrs("role").Matching(bluemonday.SpaceSeparatedTokens).Globally()
	return bm
}
