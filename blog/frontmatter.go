package blog

import (
	"html"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

// strictPolicy strips all HTML tags from frontmatter values.
var strictPolicy = bluemonday.StrictPolicy()

// frontmatterRegex matches YAML fences at document start.
// Requires newline or end-of-string after closing fence.
var frontmatterRegex = regexp.MustCompile(`(?s)\A---\r?\n(.*?)(?:\r?\n)?---(?:\r?\n|\z)`)

// Frontmatter holds parsed article metadata. DisplayTitle is plain text
// with any HTML stripped.
type Frontmatter struct {
	DisplayTitle string `yaml:"display_title"`
	TOC          *bool  `yaml:"toc"`
}

// ParseFrontmatter extracts YAML frontmatter from markdown.
// Returns parsed metadata and content with frontmatter stripped.
// On parse error, returns zero Frontmatter and original markdown.
func ParseFrontmatter(markdown string) (Frontmatter, string) {
	match := frontmatterRegex.FindStringSubmatch(markdown)
	if match == nil {
		return Frontmatter{}, markdown
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(match[1]), &fm); err != nil {
		return Frontmatter{}, markdown
	}

	// Stored as plain text; escaping happens when it is rendered.
	fm.DisplayTitle = html.UnescapeString(strictPolicy.Sanitize(fm.DisplayTitle))
	return fm, markdown[len(match[0]):]
}

// SkipTOC reports whether the article opted out of the table of contents.
func (fm Frontmatter) SkipTOC() bool {
	return fm.TOC != nil && !*fm.TOC
}
