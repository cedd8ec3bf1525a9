package feed

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	// SortByDate orders newest first.
	SortByDate SortKey = "date"
	// SortByTitle orders ascending under locale-aware collation.
	SortByTitle SortKey = "title"
	// SortByReadTime orders by estimated read time, shortest first.
	SortByReadTime SortKey = "readTime"
)

// Params carries the externally owned filter and sort inputs, passed by value
// on every derivation.
type Params struct {
	Query  string
	SortBy SortKey
}

// Derive runs the full pipeline: filter by params.Query, then order by
// params.SortBy. It is a pure function of its inputs and never mutates the
// given slice.
func Derive(articles []Article, params Params) []Article {
	return Sort(Filter(articles, params.Query), params.SortBy)
}

// Filter returns the articles matching query as a case-insensitive substring
// of the title, the summary, or any tag. Matching is boolean inclusion, no
// ranking. An empty query passes the input through in its original order.
func Filter(articles []Article, query string) []Article {
	out := make([]Article, 0, len(articles))
	if query == "" {
		return append(out, articles...)
	}

	q := strings.ToLower(query)
	for _, a := range articles {
		if matchesQuery(a, q) {
			out = append(out, a)
		}
	}
	return out
}

func matchesQuery(a Article, q string) bool {
	if strings.Contains(strings.ToLower(a.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(a.Summary), q) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Sort returns a new slice ordered by key: date newest first with ties broken
// by id, title ascending, read time ascending. Unknown keys preserve the
// input order. The input is never mutated.
func Sort(articles []Article, key SortKey) []Article {
	out := append(make([]Article, 0, len(articles)), articles...)

	switch key {
	case SortByDate:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].PublishedAt.Equal(out[j].PublishedAt) {
				return out[i].ID < out[j].ID
			}
			return out[i].PublishedAt.After(out[j].PublishedAt)
		})
	case SortByTitle:
		c := collate.New(language.Und)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Title, out[j].Title) < 0
		})
	case SortByReadTime:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ReadTimeMinutes < out[j].ReadTimeMinutes
		})
	}
	return out
}
