package usecase

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrInvalidID        = errors.New("invalid id")
	ErrTargetNotFound   = errors.New("target not found")
	ErrReviewNotFound   = errors.New("review not found or not permitted")
	ErrCommentNotFound  = errors.New("comment not found or not permitted")
	ErrAlreadyReviewed  = errors.New("user already reviewed this menu item")
	ErrInvalidReference = errors.New("menu item does not exist")

	// ErrUnknownActor means the token is valid but its user has been removed.
	ErrUnknownActor = errors.New("user no longer exists")
)
