package blog

import "time"

// TimestampLayout renders 24-hour, zero padded times. Date and time are
// joined by a non-breaking space so they never wrap apart.
const TimestampLayout = "2006/01/02&nbsp;15:04"

// Provenance is the creation and modification time of an article as seen in
// its version history. Modified is only set when more than one commit
// touched the article.
type Provenance struct {
	Created  *time.Time
	Modified *time.Time
}

// FormatTimestamp returns t in TimestampLayout, or "" for a nil time.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(TimestampLayout)
}

// Visibility maps presence of a timestamp to a CSS visibility value.
func Visibility(t *time.Time) string {
	if t == nil {
		return "hidden"
	}
	return "visible"
}
