// Package newsreader ties the reader core together: the canonical form
// definitions used by the sign-in, registration and settings screens, and the
// constants shared across the client surface. The heavy lifting lives in the
// sub-packages: pkg/form (validation engine), pkg/availability (debounced
// availability checks), pkg/feed (filter/sort pipeline), pkg/store (session
// state) and pkg/client (content API).
package newsreader

import (
	"time"

	"github.com/goliatone/go-newsreader/pkg/feed"
	"github.com/goliatone/go-newsreader/pkg/form"
)

const (
	// DefaultPageSize is the article page size requested by feed views.
	DefaultPageSize = 10
	// SearchDebounceDelay is the settle interval applied to feed search
	// input before it reaches the filter pipeline.
	SearchDebounceDelay = 300 * time.Millisecond
	// MinUsernameLength gates account usernames.
	MinUsernameLength = 3
	// MinPasswordLength gates account passwords.
	MinPasswordLength = 6
)

// SortOption labels a feed sort key for display.
type SortOption struct {
	Key   feed.SortKey
	Label string
}

// SortOptions returns the selectable feed orderings.
func SortOptions() []SortOption {
	return []SortOption{
		{Key: feed.SortByDate, Label: "Newest First"},
		{Key: feed.SortByTitle, Label: "Title A-Z"},
		{Key: feed.SortByReadTime, Label: "Read Time"},
	}
}

// LoginForm builds the sign-in form.
func LoginForm() *form.Form {
	return form.MustNew(
		form.Values{"email": "", "password": ""},
		form.Rules{
			"email": {
				form.Email("Please enter a valid email address"),
			},
			"password": {
				form.MinLength(MinPasswordLength, "Password must be at least 6 characters"),
			},
		},
	)
}

// RegisterForm builds the account creation form.
func RegisterForm() *form.Form {
	return form.MustNew(
		form.Values{"username": "", "email": "", "password": "", "displayName": ""},
		form.Rules{
			"username": {
				form.MinLength(MinUsernameLength, "Username must be at least 3 characters"),
				form.Alphanumeric("Only letters, numbers, and underscores"),
			},
			"email": {
				form.Email("Please enter a valid email address"),
			},
			"password": {
				form.MinLength(MinPasswordLength, "Password must be at least 6 characters"),
			},
			"displayName": {
				form.MinLength(2, "Display name must be at least 2 characters"),
			},
		},
	)
}

// SettingsForm builds the account settings form seeded with the caller's
// current values. Preference fields (display mode, theme, page size) carry no
// rule chains; account fields validate like registration.
func SettingsForm(initial form.Values) (*form.Form, error) {
	rules := form.Rules{}
	if _, ok := initial["username"]; ok {
		rules["username"] = []form.Rule{
			form.MinLength(MinUsernameLength, "Username must be at least 3 characters"),
			form.Alphanumeric("Only letters, numbers, and underscores"),
		}
	}
	if _, ok := initial["email"]; ok {
		rules["email"] = []form.Rule{
			form.Email("Invalid email address"),
		}
	}
	if _, ok := initial["displayName"]; ok {
		rules["displayName"] = []form.Rule{
			form.MinLength(2, "Display name must be at least 2 characters"),
		}
	}
	return form.New(initial, rules)
}
