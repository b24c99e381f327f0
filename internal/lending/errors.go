package lending

import "errors"

// Decision errors returned by the controller.
var (
	ErrUnauthenticated = errors.New("not signed in")
	ErrInvalidInput    = errors.New("invalid input")
	ErrItemUnavailable = errors.New("item is already borrowed")
	ErrItemNotBorrowed = errors.New("item is not borrowed")
	ErrNotBorrower     = errors.New("item is borrowed by someone else")
)

// Store-facing errors returned by the service.
var (
	ErrItemNotFound     = errors.New("item not found")
	ErrStoreUnavailable = errors.New("item store unavailable")
)
