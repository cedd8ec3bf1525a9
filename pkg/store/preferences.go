package store

import (
	"context"
	"errors"

	"github.com/goliatone/go-newsreader/pkg/client"
)

// ErrPreferencesNotLoaded is returned by UpdatePreferences before a fetch has
// resolved the record id.
var ErrPreferencesNotLoaded = errors.New("store: preferences not loaded")

// PreferencesState is the user preferences sub-state.
type PreferencesState struct {
	ID                  string
	PreferredCategories []string
	DisplayMode         string
	ArticlesPerPage     int
	Theme               string
	Loading             bool
	Err                 string
}

func defaultPreferences() PreferencesState {
	return PreferencesState{
		DisplayMode:     "grid",
		ArticlesPerPage: 10,
		Theme:           "light",
	}
}

// Preferences returns a copy of the preferences sub-state.
func (s *Store) Preferences() PreferencesState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.preferences
	out.PreferredCategories = append([]string(nil), s.preferences.PreferredCategories...)
	return out
}

// SetTheme switches the display theme locally.
func (s *Store) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences.Theme = theme
}

// ResetPreferences restores the defaults.
func (s *Store) ResetPreferences() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences = defaultPreferences()
}

// FetchPreferences loads the signed-in user's preferences, creating a default
// record on first use.
func (s *Store) FetchPreferences(ctx context.Context) error {
	userID := s.userID()
	if userID == "" {
		s.failPreferences(ErrNotAuthenticated)
		return ErrNotAuthenticated
	}

	s.beginPreferences()
	records, err := s.api.PreferencesFor(ctx, userID)
	if err != nil {
		s.failPreferences(err)
		return err
	}

	var prefs client.Preferences
	if len(records) == 0 {
		prefs, err = s.api.CreatePreferences(ctx, client.Preferences{
			UserID:              userID,
			PreferredCategories: []string{},
			DisplayMode:         "grid",
			ArticlesPerPage:     10,
			Theme:               "light",
		})
		if err != nil {
			s.failPreferences(err)
			return err
		}
	} else {
		prefs = records[0]
	}

	s.applyPreferences(prefs)
	return nil
}

// UpdatePreferences patches the loaded record and applies the result.
func (s *Store) UpdatePreferences(ctx context.Context, update client.PreferencesUpdate) error {
	s.mu.Lock()
	id := s.preferences.ID
	s.mu.Unlock()
	if id == "" {
		s.failPreferences(ErrPreferencesNotLoaded)
		return ErrPreferencesNotLoaded
	}

	s.beginPreferences()
	prefs, err := s.api.UpdatePreferences(ctx, id, update)
	if err != nil {
		s.failPreferences(err)
		return err
	}
	s.applyPreferences(prefs)
	return nil
}

func (s *Store) beginPreferences() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences.Loading = true
	s.preferences.Err = ""
}

func (s *Store) failPreferences(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences.Loading = false
	s.preferences.Err = err.Error()
}

func (s *Store) applyPreferences(prefs client.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences.Loading = false
	s.preferences.ID = prefs.ID
	s.preferences.PreferredCategories = append([]string(nil), prefs.PreferredCategories...)
	s.preferences.DisplayMode = prefs.DisplayMode
	s.preferences.ArticlesPerPage = prefs.ArticlesPerPage
	s.preferences.Theme = prefs.Theme
}
