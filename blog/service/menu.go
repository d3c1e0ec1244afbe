package service

import (
	"net/url"
	"sort"
	"strings"

	"github.com/danielledeleo/gitleaf/blog"
	"github.com/danielledeleo/gitleaf/templater"
)

// MenuBuilder renders the navigation menu of sibling articles.
type MenuBuilder struct {
	templates *templater.Templater
	rules     blog.NameRules
}

func NewMenuBuilder(templates *templater.Templater, rules blog.NameRules) *MenuBuilder {
	return &MenuBuilder{templates: templates, rules: rules}
}

// Build renders one link per valid name, in byte order, joined by newlines.
// The entry equal to current uses the "current" item template. Invalid names
// are skipped, including when they equal current.
func (m *MenuBuilder) Build(names []string, current string) (string, error) {
	item, err := m.templates.Load(templater.MenuItemTemplate)
	if err != nil {
		return "", err
	}
	currentItem, err := m.templates.Load(templater.MenuCurrentTemplate)
	if err != nil {
		return "", err
	}

	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	items := make([]string, 0, len(sorted))
	for _, name := range sorted {
		if !m.rules.Valid(name) {
			continue
		}

		tmpl := item
		if name == current {
			tmpl = currentItem
		}

		items = append(items, strings.TrimRight(templater.Render(tmpl, map[string]string{
			"article": name,
			"quoted":  url.PathEscape(blog.EscapeName(name)),
		}), "\r\n"))
	}

	return strings.Join(items, "\n"), nil
}
