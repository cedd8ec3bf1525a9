package feed

import "github.com/microcosm-cc/bluemonday"

// Sanitizer strips unwanted markup from articles arriving from external
// sources. Titles, summaries, authors and tags are reduced to plain text;
// article content keeps the usual user-generated-content tags.
type Sanitizer struct {
	text    *bluemonday.Policy
	content *bluemonday.Policy
}

// NewSanitizer builds a Sanitizer with the default policies.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		text:    bluemonday.StrictPolicy(),
		content: bluemonday.UGCPolicy(),
	}
}

// Article returns a copy of a with every text field cleaned.
func (s *Sanitizer) Article(a Article) Article {
	a.Title = s.text.Sanitize(a.Title)
	a.Summary = s.text.Sanitize(a.Summary)
	a.Author = s.text.Sanitize(a.Author)
	a.Content = s.content.Sanitize(a.Content)
	if len(a.Tags) > 0 {
		tags := make([]string, len(a.Tags))
		for i, tag := range a.Tags {
			tags[i] = s.text.Sanitize(tag)
		}
		a.Tags = tags
	}
	return a
}

// Articles cleans a whole collection into a new slice.
func (s *Sanitizer) Articles(articles []Article) []Article {
	out := make([]Article, len(articles))
	for i, a := range articles {
		out[i] = s.Article(a)
	}
	return out
}
