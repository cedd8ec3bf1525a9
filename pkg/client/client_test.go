package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-newsreader/pkg/client"
	"github.com/goliatone/go-newsreader/pkg/feed"
)

func jsonHandler(t *testing.T, status int, payload any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if payload != nil {
			if err := json.NewEncoder(w).Encode(payload); err != nil {
				t.Errorf("encode response: %v", err)
			}
		}
	}
}

func TestArticles_BuildsQueryAndDecodes(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		jsonHandler(t, http.StatusOK, []feed.Article{{ID: "art-1", Title: "First"}})(w, r)
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	articles, err := c.Articles(context.Background(), client.ArticleQuery{
		CategoryID: "cat-tech",
		Page:       2,
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotPath != "/articles" {
		t.Fatalf("path = %q, want /articles", gotPath)
	}
	if gotQuery != "_limit=10&_page=2&categoryId=cat-tech" {
		t.Fatalf("query = %q", gotQuery)
	}
	if len(articles) != 1 || articles[0].ID != "art-1" {
		t.Fatalf("articles = %+v", articles)
	}
}

func TestArticle_EscapesPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		jsonHandler(t, http.StatusOK, feed.Article{ID: "art/1", Title: "Slashed"})(w, r)
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	article, err := c.Article(context.Background(), "art/1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotPath != "/articles/art%2F1" {
		t.Fatalf("path = %q", gotPath)
	}
	if article.Title != "Slashed" {
		t.Fatalf("article = %+v", article)
	}
}

func TestLogin(t *testing.T) {
	account := client.User{ID: "user-1", Username: "johndoe", Email: "john@example.com"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("path = %q, want /users", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("email") == "john@example.com" && q.Get("password") == "hunter22" {
			jsonHandler(t, http.StatusOK, []client.User{account})(w, r)
			return
		}
		jsonHandler(t, http.StatusOK, []client.User{})(w, r)
	}))
	defer srv.Close()

	c := client.New(srv.URL)

	user, err := c.Login(context.Background(), client.Credentials{
		Email:    "john@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff(account, user); diff != "" {
		t.Fatalf("user mismatch (-want +got):\n%s", diff)
	}

	_, err = c.Login(context.Background(), client.Credentials{
		Email:    "john@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, client.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegister_PostsGeneratedAccount(t *testing.T) {
	var posted client.User
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users" {
			t.Errorf("request = %s %s, want POST /users", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
			t.Errorf("decode body: %v", err)
		}
		jsonHandler(t, http.StatusCreated, posted)(w, r)
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	user, err := c.Register(context.Background(), client.Registration{
		Username:    "johndoe",
		Email:       "john@example.com",
		Password:    "hunter22",
		DisplayName: "John Doe",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID == "" || posted.ID != user.ID {
		t.Fatalf("id not generated: %+v", user)
	}
	if user.Username != "johndoe" || user.AvatarURL == "" || user.CreatedAt == "" {
		t.Fatalf("user = %+v", user)
	}
}

func TestUsernameAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("username") == "taken" {
			jsonHandler(t, http.StatusOK, []client.User{{ID: "user-1"}})(w, r)
			return
		}
		jsonHandler(t, http.StatusOK, []client.User{})(w, r)
	}))
	defer srv.Close()

	c := client.New(srv.URL)

	free, err := c.UsernameAvailable(context.Background(), "fresh")
	if err != nil || !free {
		t.Fatalf("fresh: free=%v err=%v", free, err)
	}
	free, err = c.UsernameAvailable(context.Background(), "taken")
	if err != nil || free {
		t.Fatalf("taken: free=%v err=%v", free, err)
	}
}

func TestDo_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		jsonHandler(t, http.StatusOK, []client.Bookmark{})(w, r)
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	c.Token = "token-abc"
	if _, err := c.Bookmarks(context.Background(), "user-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotAuth != "Bearer token-abc" {
		t.Fatalf("authorization = %q", gotAuth)
	}
}

func TestDo_NonOKStatusBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonHandler(t, http.StatusConflict, map[string]string{"message": "email already in use"})(w, r)
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.Register(context.Background(), client.Registration{Username: "dup"})
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", apiErr.StatusCode)
	}
	if apiErr.Error() != "email already in use" {
		t.Fatalf("message = %q", apiErr.Error())
	}
}

func TestDeleteBookmark(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	if err := c.DeleteBookmark(context.Background(), "bm-9"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/bookmarks/bm-9" {
		t.Fatalf("request = %s %s", gotMethod, gotPath)
	}
}

func TestUpdatePreferences_PatchesOnlyGivenFields(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/userPreferences/pref-1" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		jsonHandler(t, http.StatusOK, client.Preferences{ID: "pref-1", Theme: "dark"})(w, r)
	}))
	defer srv.Close()

	theme := "dark"
	c := client.New(srv.URL)
	prefs, err := c.UpdatePreferences(context.Background(), "pref-1", client.PreferencesUpdate{Theme: &theme})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if prefs.Theme != "dark" {
		t.Fatalf("prefs = %+v", prefs)
	}
	if len(body) != 1 {
		t.Fatalf("patch body = %v, want only theme", body)
	}
}
