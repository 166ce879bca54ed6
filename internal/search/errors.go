// Package search runs library searches: free text or structured filters in,
// compiled Plex queries and media records out.
package search

import "errors"

var (
	// ErrTypeRequired indicates a structured filter without a media type.
	ErrTypeRequired = errors.New("structured filter requires a media type")

	// ErrNoExecutor indicates the service was built without a media server
	// to run queries against.
	ErrNoExecutor = errors.New("no media server configured")
)
