package store

import (
	"context"

	"github.com/goliatone/go-newsreader/pkg/client"
	"github.com/goliatone/go-newsreader/pkg/feed"
)

// ArticlesState is the article sub-state, including the externally owned
// filter and sort inputs fed to the derivation pipeline.
type ArticlesState struct {
	Items       []feed.Article
	Current     *feed.Article
	Loading     bool
	Err         string
	SearchQuery string
	SortBy      feed.SortKey
}

// Articles returns a copy of the article sub-state.
func (s *Store) Articles() ArticlesState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.articles
	out.Items = append([]feed.Article(nil), s.articles.Items...)
	if s.articles.Current != nil {
		current := *s.articles.Current
		out.Current = &current
	}
	return out
}

// VisibleArticles derives the filtered, sorted view from the owned query and
// sort key.
func (s *Store) VisibleArticles() []feed.Article {
	s.mu.Lock()
	items := append([]feed.Article(nil), s.articles.Items...)
	params := feed.Params{Query: s.articles.SearchQuery, SortBy: s.articles.SortBy}
	s.mu.Unlock()
	return feed.Derive(items, params)
}

// SetSearchQuery records the feed search input.
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles.SearchQuery = query
}

// SetSortBy records the feed ordering.
func (s *Store) SetSortBy(key feed.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles.SortBy = key
}

// ClearCurrentArticle drops the detail view selection.
func (s *Store) ClearCurrentArticle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles.Current = nil
}

// FetchArticles loads the article collection.
func (s *Store) FetchArticles(ctx context.Context, q client.ArticleQuery) error {
	s.beginArticles()
	items, err := s.api.Articles(ctx, q)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles.Loading = false
	if err != nil {
		s.articles.Err = err.Error()
		return err
	}
	s.articles.Items = items
	return nil
}

// FetchArticle loads a single article into the detail slot.
func (s *Store) FetchArticle(ctx context.Context, id string) error {
	s.beginArticles()
	article, err := s.api.Article(ctx, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles.Loading = false
	if err != nil {
		s.articles.Err = err.Error()
		return err
	}
	s.articles.Current = &article
	return nil
}

// SearchArticles replaces the collection with server-side search results.
func (s *Store) SearchArticles(ctx context.Context, query string) error {
	s.beginArticles()
	items, err := s.api.SearchArticles(ctx, query)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles.Loading = false
	if err != nil {
		s.articles.Err = err.Error()
		return err
	}
	s.articles.Items = items
	return nil
}

func (s *Store) beginArticles() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles.Loading = true
	s.articles.Err = ""
}
