package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/goliatone/go-newsreader/pkg/client"
)

// AuthState is the authentication sub-state.
type AuthState struct {
	User          *client.User
	Token         string
	Authenticated bool
	Loading       bool
	Err           string
}

// Auth returns a copy of the authentication sub-state.
func (s *Store) Auth() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.auth
	if s.auth.User != nil {
		user := *s.auth.User
		out.User = &user
	}
	return out
}

// Login authenticates against the API, installs the session and persists it.
func (s *Store) Login(ctx context.Context, creds client.Credentials) error {
	s.beginAuth()
	user, err := s.api.Login(ctx, creds)
	if err != nil {
		s.failAuth(err)
		return err
	}
	s.installSession(user)
	return nil
}

// Register creates an account and signs it in.
func (s *Store) Register(ctx context.Context, reg client.Registration) error {
	s.beginAuth()
	user, err := s.api.Register(ctx, reg)
	if err != nil {
		s.failAuth(err)
		return err
	}
	s.installSession(user)
	return nil
}

// Logout clears the session and every slice that depends on it.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = AuthState{}
	s.bookmarks = BookmarksState{}
	s.preferences = defaultPreferences()
	s.api.Token = ""
	_ = s.sessions.Clear()
}

// RestoreSession re-hydrates authentication from persisted session state, as
// on application start. It reports whether a session was found.
func (s *Store) RestoreSession() bool {
	sess, ok, err := s.sessions.Load()
	if err != nil || !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user := sess.User
	s.auth = AuthState{User: &user, Token: sess.Token, Authenticated: true}
	s.api.Token = sess.Token
	return true
}

// ClearAuthError drops a stale authentication error message.
func (s *Store) ClearAuthError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.Err = ""
}

func (s *Store) beginAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.Loading = true
	s.auth.Err = ""
}

func (s *Store) failAuth(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.Loading = false
	s.auth.Err = err.Error()
}

func (s *Store) installSession(user client.User) {
	token := "token-" + uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = AuthState{User: &user, Token: token, Authenticated: true}
	s.api.Token = token
	// Persistence failures leave the in-memory session intact.
	_ = s.sessions.Save(Session{Token: token, User: user})
}
