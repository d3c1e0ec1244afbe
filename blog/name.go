package blog

import (
	"regexp"
	"sort"
	"strings"
)

const (
	hiddenPrefix = "."
	draftSuffix  = ".draft"

	// DefaultAssetsDir is the reserved directory for static files that sits
	// next to the articles.
	DefaultAssetsDir = "assets"
)

// nameRegex must match the whole name.
var nameRegex = regexp.MustCompile(`^[\p{L}\p{N}_\s.,;!?%-]+$`)

// NameRules decides which directory entries may be used as articles.
type NameRules struct {
	ReserveAssets bool
	AssetsDir     string
}

// DefaultNameRules reserves the "assets" directory.
var DefaultNameRules = NameRules{ReserveAssets: true, AssetsDir: DefaultAssetsDir}

// Valid reports whether name is safe to use as a path segment and as HTML
// text.
func (r NameRules) Valid(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, hiddenPrefix) || strings.HasSuffix(name, draftSuffix) {
		return false
	}
	if r.ReserveAssets {
		assets := r.AssetsDir
		if assets == "" {
			assets = DefaultAssetsDir
		}
		if name == assets {
			return false
		}
	}
	return nameRegex.MatchString(name)
}

// ValidName checks name against DefaultNameRules.
func ValidName(name string) bool {
	return DefaultNameRules.Valid(name)
}

// EscapeName makes a name URL friendly: dashes are doubled, then spaces
// become single dashes.
// Example: EscapeName("Hello world") → "Hello-world"
// Example: EscapeName("notes-v2") → "notes--v2"
func EscapeName(name string) string {
	name = strings.ReplaceAll(name, "-", "--")
	return strings.ReplaceAll(name, " ", "-")
}

// UnescapeName reverses EscapeName. An isolated dash is a space and a pair
// of dashes is a literal dash; an odd run of three or more dashes decodes to
// its pairs followed by a space.
func UnescapeName(escaped string) string {
	if !strings.Contains(escaped, "-") {
		return escaped
	}

	var b strings.Builder
	b.Grow(len(escaped))

	for i := 0; i < len(escaped); {
		if escaped[i] != '-' {
			b.WriteByte(escaped[i])
			i++
			continue
		}

		run := 0
		for i < len(escaped) && escaped[i] == '-' {
			run++
			i++
		}

		if run == 1 {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(strings.Repeat("-", run/2))
		if run%2 == 1 {
			b.WriteByte(' ')
		}
	}

	return b.String()
}

// ResolveEscapedName maps an escaped token back to an article name using the
// directory listing. EscapeName is not injective once spaces sit next to
// dashes or other spaces ("a  b" and "a-b" both escape to "a--b"), so the
// listing decides. Among several matching entries the plain UnescapeName
// result wins, then the first in sort order. Without a match the token is
// simply unescaped.
func ResolveEscapedName(escaped string, names []string, rules NameRules) string {
	plain := UnescapeName(escaped)

	var matches []string
	for _, name := range names {
		if rules.Valid(name) && EscapeName(name) == escaped {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 0:
		return plain
	case 1:
		return matches[0]
	}

	sort.Strings(matches)
	for _, m := range matches {
		if m == plain {
			return m
		}
	}
	return matches[0]
}
