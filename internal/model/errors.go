package model

import "fmt"

// ConfigError is a fatal configuration problem (missing API key, auth enabled
// without credentials). It halts startup; there is nothing to retry.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Message
}

// UpstreamAPIError is an error envelope returned by the platform API inside an
// otherwise successful response.
type UpstreamAPIError struct {
	Message string
	Code    int
}

func (e *UpstreamAPIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("upstream API error (%d): %s", e.Code, e.Message)
	}
	return "upstream API error: " + e.Message
}

// NetworkError is a transport-level failure talking to the platform API:
// timeout, connection failure or a non-2xx status. Never retried.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthError is a failed login attempt. The session stays at the login prompt
// and the user may retry indefinitely.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "auth error: " + e.Message
}

// PersistenceError is a failed credential-file write. Swallowed at the store
// layer and surfaced as a soft warning on admin mutations; read-only
// deployments disable the admin console instead of erroring.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist credential file %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
