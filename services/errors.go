package services

import "errors"

// Sentinel errors returned by the service layer. Controllers translate
// these into HTTP status codes; the services themselves stay agnostic
// of the transport.
var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrForbidden means the caller failed the ownership or role check.
	ErrForbidden = errors.New("operation not permitted")
	// ErrInvalidCredentials means the signin password comparison failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken means the unique username constraint was violated.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrAlreadyLiked means a like for the (user, blog) pair already exists.
	ErrAlreadyLiked = errors.New("blog already liked")
	// ErrNotLiked means no like exists for the (user, blog) pair.
	ErrNotLiked = errors.New("blog not liked")
)
