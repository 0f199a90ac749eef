package auth

import (
	"github.com/trendlens/youtube-trending-go/internal/credstore"
	"github.com/trendlens/youtube-trending-go/internal/model"
)

// EnsureCredentials verifies that login can actually work before any login
// form is served. With auth enabled, a missing or empty credential store is a
// fatal configuration error, not an auth failure.
func EnsureCredentials(enabled bool, store *credstore.Store) error {
	if !enabled {
		return nil
	}
	if store == nil {
		return &model.ConfigError{Message: "auth is enabled but the credential file is missing"}
	}
	if store.Len() == 0 {
		return &model.ConfigError{Message: "auth is enabled but the credential file contains no users"}
	}
	return nil
}
