package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrTransport indicates a network or HTTP failure talking to the catalog
	ErrTransport = errors.New("catalog request failed")

	// ErrNotFound indicates the requested movie does not exist
	ErrNotFound = errors.New("movie not found")

	// ErrEmptyQuery indicates a blank search query was rejected before any request
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("api key is invalid")

	// ErrNotConfigured indicates no API key is configured
	ErrNotConfigured = errors.New("catalog api key is not configured")
)
