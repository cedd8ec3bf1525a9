// Package store owns the reader's session state: authentication, the loaded
// article collection, bookmarks, categories and user preferences. All
// mutation goes through declared transition methods; callers read state
// through selectors that return copies, never live references.
package store

import (
	"errors"
	"sync"

	"github.com/goliatone/go-newsreader/pkg/client"
	"github.com/goliatone/go-newsreader/pkg/feed"
)

// ErrNotAuthenticated is returned by transitions that require a signed-in
// user.
var ErrNotAuthenticated = errors.New("store: not authenticated")

// Store is the single owner of session state.
type Store struct {
	mu       sync.Mutex
	api      *client.Client
	sessions SessionStorage

	auth        AuthState
	articles    ArticlesState
	bookmarks   BookmarksState
	categories  CategoriesState
	preferences PreferencesState
}

// Option configures a Store during construction.
type Option func(*Store)

// WithSessionStorage replaces the default in-memory session storage,
// typically with NewFileSessionStorage so sessions survive restarts.
func WithSessionStorage(s SessionStorage) Option {
	return func(st *Store) {
		if s != nil {
			st.sessions = s
		}
	}
}

// New wires a store to the content API client.
func New(api *client.Client, opts ...Option) *Store {
	s := &Store{
		api:      api,
		sessions: NewMemorySessionStorage(),
	}
	s.articles.SortBy = feed.SortByDate
	s.preferences = defaultPreferences()
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// userID returns the signed-in user's id, or "" when unauthenticated. Callers
// hold no lock.
func (s *Store) userID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.auth.User == nil {
		return ""
	}
	return s.auth.User.ID
}
