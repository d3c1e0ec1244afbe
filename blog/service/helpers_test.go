package service_test

import (
	"testing/fstest"

	"github.com/danielledeleo/gitleaf/templater"
)

// testTemplates returns minimal templates, one line each, so assertions can
// match whole strings.
func testTemplates() *templater.Templater {
	return templater.New(fstest.MapFS{
		"templates/page.html":              &fstest.MapFile{Data: []byte("<title>¤title¤</title><nav>¤menu¤</nav><main>¤article¤</main>")},
		"templates/article.html":           &fstest.MapFile{Data: []byte("<h1>¤title¤</h1><c class=\"¤ctime_visibility¤\">¤ctime¤</c><m class=\"¤mtime_visibility¤\">¤mtime¤</m>¤text¤")},
		"templates/menu_item.html":         &fstest.MapFile{Data: []byte("<a href=\"?¤quoted¤\">¤article¤</a>\n")},
		"templates/menu_item_current.html": &fstest.MapFile{Data: []byte("<a id=\"current\" href=\"?¤quoted¤\">¤article¤</a>\n")},
		"templates/notfound.md":            &fstest.MapFile{Data: []byte("Nothing here.")},
	})
}
