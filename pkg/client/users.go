package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// User is the account entity.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
	CreatedAt   string `json:"createdAt"`
}

// Credentials identify an existing account.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration carries the fields needed to create an account.
type Registration struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// Login resolves the account matching the credentials. Returns
// ErrInvalidCredentials when none does.
func (c *Client) Login(ctx context.Context, creds Credentials) (User, error) {
	params := url.Values{}
	params.Set("email", creds.Email)
	params.Set("password", creds.Password)

	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", params, nil, &users); err != nil {
		return User{}, err
	}
	if len(users) == 0 {
		return User{}, ErrInvalidCredentials
	}
	return users[0], nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, reg Registration) (User, error) {
	user := User{
		ID:          "user-" + newID(),
		Username:    reg.Username,
		Email:       reg.Email,
		Password:    reg.Password,
		DisplayName: reg.DisplayName,
		AvatarURL:   "https://i.pravatar.cc/150?u=" + url.QueryEscape(reg.Username),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	var out User
	if err := c.do(ctx, http.MethodPost, "/users", nil, user, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

// UsernameAvailable reports whether no existing account holds the username.
// The signature adapts directly into an availability.ValidatorFunc.
func (c *Client) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	params := url.Values{}
	params.Set("username", username)
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", params, nil, &users); err != nil {
		return false, err
	}
	return len(users) == 0, nil
}

// EmailAvailable reports whether no existing account holds the email address.
func (c *Client) EmailAvailable(ctx context.Context, email string) (bool, error) {
	params := url.Values{}
	params.Set("email", email)
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", params, nil, &users); err != nil {
		return false, err
	}
	return len(users) == 0, nil
}
