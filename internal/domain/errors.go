package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the item is not in the watch list
	ErrItemNotFound = errors.New("watch list item not found")

	// ErrInvalidFilter indicates an unknown filter mode
	ErrInvalidFilter = errors.New("invalid filter mode")
)
