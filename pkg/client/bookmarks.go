package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Bookmark links a user to a saved article.
type Bookmark struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	ArticleID string `json:"articleId"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"createdAt"`
}

// Preferences holds a user's display settings.
type Preferences struct {
	ID                  string   `json:"id"`
	UserID              string   `json:"userId"`
	PreferredCategories []string `json:"preferredCategories"`
	DisplayMode         string   `json:"displayMode"`
	ArticlesPerPage     int      `json:"articlesPerPage"`
	Theme               string   `json:"theme"`
}

// PreferencesUpdate is a partial preferences patch; nil fields are left
// untouched by the server.
type PreferencesUpdate struct {
	PreferredCategories *[]string `json:"preferredCategories,omitempty"`
	DisplayMode         *string   `json:"displayMode,omitempty"`
	ArticlesPerPage     *int      `json:"articlesPerPage,omitempty"`
	Theme               *string   `json:"theme,omitempty"`
}

// Bookmarks lists the user's bookmarks.
func (c *Client) Bookmarks(ctx context.Context, userID string) ([]Bookmark, error) {
	params := url.Values{}
	params.Set("userId", userID)
	var out []Bookmark
	if err := c.do(ctx, http.MethodGet, "/bookmarks", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBookmark saves an article for the user.
func (c *Client) CreateBookmark(ctx context.Context, userID, articleID string) (Bookmark, error) {
	bookmark := Bookmark{
		ID:        "bm-" + newID(),
		UserID:    userID,
		ArticleID: articleID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	var out Bookmark
	if err := c.do(ctx, http.MethodPost, "/bookmarks", nil, bookmark, &out); err != nil {
		return Bookmark{}, err
	}
	return out, nil
}

// DeleteBookmark removes a saved article.
func (c *Client) DeleteBookmark(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bookmarks/"+url.PathEscape(id), nil, nil, nil)
}

// PreferencesFor lists the preference records belonging to the user. The
// backing API models preferences as a queryable collection, so zero or one
// record is expected.
func (c *Client) PreferencesFor(ctx context.Context, userID string) ([]Preferences, error) {
	params := url.Values{}
	params.Set("userId", userID)
	var out []Preferences
	if err := c.do(ctx, http.MethodGet, "/userPreferences", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePreferences stores a new preference record. A missing id is
// generated.
func (c *Client) CreatePreferences(ctx context.Context, prefs Preferences) (Preferences, error) {
	if prefs.ID == "" {
		prefs.ID = "pref-" + newID()
	}
	var out Preferences
	if err := c.do(ctx, http.MethodPost, "/userPreferences", nil, prefs, &out); err != nil {
		return Preferences{}, err
	}
	return out, nil
}

// UpdatePreferences patches an existing preference record.
func (c *Client) UpdatePreferences(ctx context.Context, id string, update PreferencesUpdate) (Preferences, error) {
	var out Preferences
	if err := c.do(ctx, http.MethodPatch, "/userPreferences/"+url.PathEscape(id), nil, update, &out); err != nil {
		return Preferences{}, err
	}
	return out, nil
}

func newID() string {
	return uuid.NewString()
}
