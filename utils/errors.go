package utils

import "errors"

var (
	ErrEmptyURL      = errors.New("URL cannot be empty")
	ErrInvalidURL    = errors.New("invalid URL format")
	ErrInvalidScheme = errors.New("URL scheme must be http or https")
	ErrEmptyHost     = errors.New("URL must have a host")
	ErrExpiryInPast  = errors.New("expiry date must be in the future")
	ErrMissingOwner  = errors.New("ownerID is required")
)
