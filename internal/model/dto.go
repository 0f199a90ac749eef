package model

import "time"

// ErrorResponse is the standard error body returned by all HTTP endpoints.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ErrorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}

// TrendingVideoDTO is a fully rendered trending list entry: counts are
// pre-formatted strings so clients never deal with missing numerics.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type TrendingVideoDTO struct {
	Rank         int     `json:"rank"`
	ID           string  `json:"id"`
	URL          string  `json:"url"`
	Title        string  `json:"title"`
	ChannelTitle string  `json:"channel_title"`
	ChannelID    string  `json:"channel_id"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Views        string  `json:"views"`
	Likes        string  `json:"likes"`
	Comments     string  `json:"comments"`
	Subscribers  string  `json:"subscribers"`
}

// TrendingResponse is the body of GET /api/trending. Warning is set when the
// channel-stats fetch failed and subscriber counts degraded to "-".
type TrendingResponse struct {
	Region    string             `json:"region"`
	FetchedAt time.Time          `json:"fetched_at"`
	Items     []TrendingVideoDTO `json:"items"`
	Warning   string             `json:"warning,omitempty"`
}

// SessionDTO describes the caller's session. AdminConsole is true only when
// the user is allow-listed AND the credential store accepts writes; otherwise
// the console is absent from the payload, not merely disabled.
type SessionDTO struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
	AdminConsole  bool   `json:"admin_console,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AddUserRequest is the body of POST /api/admin/users.
type AddUserRequest struct {
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// ChangePasswordRequest is the body of PUT /api/admin/users/:username/password.
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}
