// Package history derives article provenance from version control.
package history

import (
	"context"
	"time"

	"github.com/danielledeleo/gitleaf/blog"
)

// Commit is a single version control commit touching a file.
type Commit struct {
	Hash string
	When time.Time
}

// Log lists the commits that touched a path. Implementations may return the
// commits in any order.
type Log interface {
	CommitsTouching(ctx context.Context, path string) ([]Commit, error)
}

// NoLog is a Log without history. Every article is treated as untracked.
type NoLog struct{}

func (NoLog) CommitsTouching(context.Context, string) ([]Commit, error) {
	return nil, nil
}

// Resolver turns the commit log of a file into a blog.Provenance.
type Resolver struct {
	log      Log
	location *time.Location
}

// NewResolver creates a Resolver. Times are reported in loc, or in the
// commit's own zone when loc is nil.
func NewResolver(log Log, loc *time.Location) *Resolver {
	return &Resolver{log: log, location: loc}
}

// Resolve returns the creation and modification time of the file at path.
// The log order is not trusted: the oldest and newest commits are picked in
// a single pass. On equal times the first commit seen is the oldest and the
// last one seen is the newest. A file without commits has an empty
// Provenance and no error.
func (r *Resolver) Resolve(ctx context.Context, path string) (blog.Provenance, error) {
	commits, err := r.log.CommitsTouching(ctx, path)
	if err != nil {
		return blog.Provenance{}, err
	}
	if len(commits) == 0 {
		return blog.Provenance{}, nil
	}

	oldest, newest := commits[0], commits[0]
	for _, c := range commits[1:] {
		if c.When.Before(oldest.When) {
			oldest = c
		}
		if !c.When.Before(newest.When) {
			newest = c
		}
	}

	created := r.localize(oldest.When)
	prov := blog.Provenance{Created: &created}
	if newest.Hash != oldest.Hash {
		modified := r.localize(newest.When)
		prov.Modified = &modified
	}
	return prov, nil
}

func (r *Resolver) localize(t time.Time) time.Time {
	if r.location == nil {
		return t
	}
	return t.In(r.location)
}
