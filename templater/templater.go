package templater

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Delimiter surrounds every placeholder name in a template, e.g. ¤title¤.
const Delimiter = "¤"

// Template file names, relative to Dir.
const (
	Dir                 = "templates"
	PageTemplate        = "page.html"
	ArticleTemplate     = "article.html"
	MenuItemTemplate    = "menu_item.html"
	MenuCurrentTemplate = "menu_item_current.html"
	NotFoundContent     = "notfound.md"
)

// Templater reads templates from a filesystem and fills in their
// placeholders. Templates are read on every call; nothing is cached.
type Templater struct {
	fsys fs.FS
}

func New(fsys fs.FS) *Templater {
	return &Templater{fsys: fsys}
}

// Load returns the raw contents of the named template.
func (t *Templater) Load(name string) (string, error) {
	data, err := fs.ReadFile(t.fsys, path.Join(Dir, name))
	if err != nil {
		return "", fmt.Errorf("template %s: %w", name, err)
	}
	return string(data), nil
}

// RenderTemplate loads the named template and writes it to w with bindings
// applied.
func (t *Templater) RenderTemplate(w io.Writer, name string, bindings map[string]string) error {
	tmpl, err := t.Load(name)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, Render(tmpl, bindings))
	return err
}

// Render replaces every ¤key¤ placeholder in tmpl with its bound value.
// Longer placeholders are substituted first so a short key never eats part of
// a longer one. Placeholders without a binding are left as they are.
func Render(tmpl string, bindings map[string]string) string {
	placeholders := make([]string, 0, len(bindings))
	for key := range bindings {
		placeholders = append(placeholders, key)
	}
	sort.Slice(placeholders, func(i, j int) bool {
		if len(placeholders[i]) != len(placeholders[j]) {
			return len(placeholders[i]) > len(placeholders[j])
		}
		return placeholders[i] < placeholders[j]
	})

	result := tmpl
	for _, key := range placeholders {
		result = strings.ReplaceAll(result, Delimiter+key+Delimiter, bindings[key])
	}
	return result
}
