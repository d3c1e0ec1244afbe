package history

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrOutsideRepository is returned for paths outside the repository worktree.
var ErrOutsideRepository = errors.New("path is outside the repository")

// GitLog reads commits from the git repository that contains dir. The
// repository is opened on every call.
type GitLog struct {
	dir string
}

// NewGitLog creates a GitLog for the repository containing dir. dir may be
// any directory inside the worktree.
func NewGitLog(dir string) *GitLog {
	return &GitLog{dir: dir}
}

// CommitsTouching lists commits reachable from HEAD that changed path. A
// repository without commits yields an empty list.
func (g *GitLog) CommitsTouching(ctx context.Context, path string) ([]Commit, error) {
	repo, err := git.PlainOpenWithOptions(g.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", g.dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("worktree for %s: %w", g.dir, err)
	}

	rel, err := relativeTo(wt.Filesystem.Root(), path)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Log(&git.LogOptions{FileName: &rel})
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", rel, err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, Commit{Hash: c.Hash.String(), When: c.Committer.When})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", rel, err)
	}

	return commits, nil
}

// relativeTo returns path relative to root in slash form, as git expects.
func relativeTo(root, path string) (string, error) {
	root, err := canonical(root)
	if err != nil {
		return "", err
	}
	path, err = canonical(path)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, ErrOutsideRepository)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", path, ErrOutsideRepository)
	}
	return filepath.ToSlash(rel), nil
}

func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
