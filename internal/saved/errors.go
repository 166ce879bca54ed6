package saved

import "errors"

var (
	// ErrNotFound indicates the named search doesn't exist.
	ErrNotFound = errors.New("saved search not found")

	// ErrDuplicate indicates a search with the same name already exists.
	ErrDuplicate = errors.New("saved search already exists")

	// ErrEmpty indicates a search with neither text nor a filter.
	ErrEmpty = errors.New("saved search needs text or a filter")
)
