package store

import (
	"context"

	"github.com/goliatone/go-newsreader/pkg/client"
	"github.com/goliatone/go-newsreader/pkg/feed"
)

// BookmarksState is the bookmarks sub-state.
type BookmarksState struct {
	Items   []client.Bookmark
	Loading bool
	Err     string
}

// CategoriesState is the categories sub-state.
type CategoriesState struct {
	Items   []feed.Category
	Loading bool
	Err     string
}

// Bookmarks returns a copy of the saved bookmarks.
func (s *Store) Bookmarks() []client.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]client.Bookmark(nil), s.bookmarks.Items...)
}

// BookmarkedArticleIDs returns the set of saved article ids, for quick
// membership checks in feed views.
func (s *Store) BookmarkedArticleIDs() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.bookmarks.Items))
	for _, b := range s.bookmarks.Items {
		out[b.ArticleID] = true
	}
	return out
}

// FetchBookmarks loads the signed-in user's bookmarks.
func (s *Store) FetchBookmarks(ctx context.Context) error {
	userID := s.userID()
	if userID == "" {
		s.setBookmarkErr(ErrNotAuthenticated)
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	s.bookmarks.Loading = true
	s.bookmarks.Err = ""
	s.mu.Unlock()

	items, err := s.api.Bookmarks(ctx, userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks.Loading = false
	if err != nil {
		s.bookmarks.Err = err.Error()
		return err
	}
	s.bookmarks.Items = items
	return nil
}

// AddBookmark saves an article for the signed-in user.
func (s *Store) AddBookmark(ctx context.Context, articleID string) (client.Bookmark, error) {
	userID := s.userID()
	if userID == "" {
		s.setBookmarkErr(ErrNotAuthenticated)
		return client.Bookmark{}, ErrNotAuthenticated
	}

	bookmark, err := s.api.CreateBookmark(ctx, userID, articleID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.bookmarks.Err = err.Error()
		return client.Bookmark{}, err
	}
	s.bookmarks.Items = append(s.bookmarks.Items, bookmark)
	return bookmark, nil
}

// RemoveBookmark deletes a saved article.
func (s *Store) RemoveBookmark(ctx context.Context, id string) error {
	err := s.api.DeleteBookmark(ctx, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.bookmarks.Err = err.Error()
		return err
	}
	kept := s.bookmarks.Items[:0]
	for _, b := range s.bookmarks.Items {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.bookmarks.Items = kept
	return nil
}

// ClearBookmarks empties the bookmark slice without touching the server.
func (s *Store) ClearBookmarks() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks.Items = nil
}

// Categories returns a copy of the loaded categories.
func (s *Store) Categories() []feed.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]feed.Category(nil), s.categories.Items...)
}

// FetchCategories loads the category list.
func (s *Store) FetchCategories(ctx context.Context) error {
	s.mu.Lock()
	s.categories.Loading = true
	s.categories.Err = ""
	s.mu.Unlock()

	items, err := s.api.Categories(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories.Loading = false
	if err != nil {
		s.categories.Err = err.Error()
		return err
	}
	s.categories.Items = items
	return nil
}

func (s *Store) setBookmarkErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks.Err = err.Error()
}
