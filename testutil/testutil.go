// Package testutil provides test utilities for gitleaf integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielledeleo/gitleaf"
	"github.com/danielledeleo/gitleaf/blog"
	"github.com/danielledeleo/gitleaf/blog/service"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a temporary git repository with an articles directory.
type Repo struct {
	Dir         string
	ArticlesDir string
	repo        *git.Repository
}

// NewRepo initializes an empty git repository in a temporary directory.
func NewRepo(t *testing.T) *Repo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repository: %v", err)
	}

	articles := filepath.Join(dir, "articles")
	if err := os.MkdirAll(articles, 0o755); err != nil {
		t.Fatalf("failed to create articles dir: %v", err)
	}

	return &Repo{Dir: dir, ArticlesDir: articles, repo: repo}
}

// WriteArticle writes an article without committing it.
func (r *Repo) WriteArticle(t *testing.T, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(r.ArticlesDir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write article %s: %v", name, err)
	}
}

// Mkdir creates a directory inside the articles directory.
func (r *Repo) Mkdir(t *testing.T, name string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Join(r.ArticlesDir, name), 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", name, err)
	}
}

// WriteFile writes a file relative to the repository root, creating parent
// directories.
func (r *Repo) WriteFile(t *testing.T, rel, content string) {
	t.Helper()

	path := filepath.Join(r.Dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

// CommitArticle writes an article and commits it at the given time. Returns
// the commit hash.
func (r *Repo) CommitArticle(t *testing.T, name, content string, when time.Time) string {
	t.Helper()

	r.WriteArticle(t, name, content)
	return r.Commit(t, "articles/"+name, "update "+name, when)
}

// Commit stages rel (slash separated, relative to the repository root) and
// commits it at the given time.
func (r *Repo) Commit(t *testing.T, rel, message string, when time.Time) string {
	t.Helper()

	wt, err := r.repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}
	if _, err := wt.Add(rel); err != nil {
		t.Fatalf("failed to add %s: %v", rel, err)
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "author@example.com",
			When:  when,
		},
	})
	if err != nil {
		t.Fatalf("failed to commit %s: %v", rel, err)
	}
	return hash.String()
}

// NewTestConfig returns the default configuration rooted at baseDir, with
// timestamps in UTC.
func NewTestConfig(baseDir string) *blog.Config {
	return &blog.Config{
		Host:           "localhost:8080",
		BaseDir:        baseDir,
		ArticlesDir:    "articles",
		DefaultArticle: "Hello world",
		NotFoundTitle:  "404",
		ReserveAssets:  true,
		AssetsDir:      blog.DefaultAssetsDir,
		History:        service.HistoryGit,
		Timezone:       "UTC",
		Sanitize:       true,
		LogFormat:      "text",
		LogLevel:       "error",
	}
}

// TestApp bundles a repository with a page service rendering from it.
type TestApp struct {
	Repo   *Repo
	Config *blog.Config
	Pages  service.PageService
}

// SetupTestApp creates a repository and a page service using the embedded
// templates.
func SetupTestApp(t *testing.T) *TestApp {
	t.Helper()

	repo := NewRepo(t)
	config := NewTestConfig(repo.Dir)

	pages, err := service.NewFromConfig(config, gitleaf.NewContentFS(repo.Dir))
	if err != nil {
		t.Fatalf("failed to create page service: %v", err)
	}

	return &TestApp{Repo: repo, Config: config, Pages: pages}
}
