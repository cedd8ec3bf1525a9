// Package feed models the aggregated article domain and derives filtered,
// sorted views over in-memory article collections.
package feed

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Article is the content entity consumed by the pipeline. The pipeline treats
// articles as immutable; derivations always return fresh slices.
type Article struct {
	ID              string    `json:"id" yaml:"id"`
	Title           string    `json:"title" yaml:"title"`
	Summary         string    `json:"summary" yaml:"summary"`
	Content         string    `json:"content" yaml:"content"`
	Author          string    `json:"author" yaml:"author"`
	Source          string    `json:"source" yaml:"source"`
	SourceURL       string    `json:"sourceUrl" yaml:"sourceUrl"`
	ImageURL        string    `json:"imageUrl" yaml:"imageUrl"`
	CategoryID      string    `json:"categoryId" yaml:"categoryId"`
	Tags            []string  `json:"tags" yaml:"tags"`
	PublishedAt     time.Time `json:"publishedAt" yaml:"publishedAt"`
	ReadTimeMinutes int       `json:"readTimeMinutes" yaml:"readTimeMinutes"`
}

// Category groups articles.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug" yaml:"slug"`
}

// LoadArticles decodes a YAML article list. Entries missing an id or title,
// or carrying a negative read time, are rejected.
func LoadArticles(r io.Reader) ([]Article, error) {
	if r == nil {
		return nil, fmt.Errorf("feed loader: missing reader")
	}

	var articles []Article
	if err := yaml.NewDecoder(r).Decode(&articles); err != nil {
		return nil, fmt.Errorf("feed loader: decode articles: %w", err)
	}

	for i, a := range articles {
		if a.ID == "" {
			return nil, fmt.Errorf("feed loader: article %d: id is required", i)
		}
		if a.Title == "" {
			return nil, fmt.Errorf("feed loader: article %q: title is required", a.ID)
		}
		if a.ReadTimeMinutes < 0 {
			return nil, fmt.Errorf("feed loader: article %q: negative read time", a.ID)
		}
	}
	return articles, nil
}
