package domain

import (
	"errors"
)

// FilterAll is the passthrough value for the category and store filters.
const FilterAll = "all"

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedNotConfirmed   = "destructive action was not confirmed"

	ErrParseUUID          = errors.New("failed to parse UUID")
	ErrNotConfirmed       = errors.New("action not confirmed")
	ErrInvalidCoordinates = errors.New("latitude and longitude must be set together")
)
