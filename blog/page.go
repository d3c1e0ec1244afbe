package blog

import "net/http"

// Outcome tags how a request was resolved.
type Outcome int

const (
	Found Outcome = iota
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Status maps the outcome to an HTTP status code.
func (o Outcome) Status() int {
	if o == NotFound {
		return http.StatusNotFound
	}
	return http.StatusOK
}

// Page is a fully rendered HTML page.
type Page struct {
	// Name is the article file the page was rendered from. Empty for the
	// not-found page.
	Name    string
	Title   string
	HTML    string
	Outcome Outcome
}
