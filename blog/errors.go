package blog

import "errors"

// Sentinel errors for article resolution. Both are collapsed into the
// not-found page by the resolver and never reach the transport.
var (
	ErrInvalidName     = errors.New("invalid article name")
	ErrArticleNotFound = errors.New("article not found")
)
