// Package intent provides the local keyword classifier used when the remote
// recommendation backend is unreachable.
package intent

import "strings"

// Genre selects a fallback recommendation set.
type Genre string

const (
	GenreComedy  Genre = "comedy"
	GenreDrama   Genre = "drama"
	GenreRomance Genre = "romance"
	GenreHorror  Genre = "horror"
	GenreAction  Genre = "action"
	GenreMixed   Genre = "mixed"
)

type rule struct {
	genre    Genre
	keywords []string
}

// rules are evaluated top to bottom; the first match wins. Matching is plain
// substring containment over the lower-cased input, so word stems like
// "комед" catch inflected forms ("комедию", "комедия"). This is intentional
// and must stay compatible with the historical behavior.
var rules = []rule{
	{GenreComedy, []string{"комед", "весел", "смеш"}},
	{GenreDrama, []string{"драм", "серьез", "грустн"}},
	{GenreRomance, []string{"романт", "любов"}},
	{GenreHorror, []string{"ужас", "страшн", "хоррор"}},
	{GenreAction, []string{"боевик", "экшн", "действи"}},
}

// Classify maps free-form text to a genre. It is total and deterministic:
// every input yields exactly one genre, and unmatched input yields GenreMixed.
func Classify(text string) Genre {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.genre
			}
		}
	}
	return GenreMixed
}

// Known reports whether g is part of the genre taxonomy.
func Known(g Genre) bool {
	switch g {
	case GenreComedy, GenreDrama, GenreRomance, GenreHorror, GenreAction, GenreMixed:
		return true
	default:
		return false
	}
}
