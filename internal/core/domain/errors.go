package domain

import "errors"

// Postcode lookup failures.
var (
	ErrNotFound           = errors.New("postcode not found")
	ErrMissingCoordinates = errors.New("location data not available for this postcode")
	ErrTransport          = errors.New("postcode lookup failed")
)

// Caller-side validation failures.
var (
	ErrInvalidLocation = errors.New("invalid location")
	ErrInvalidRadius   = errors.New("radius must be a positive number of kilometres")
	ErrInvalidPostcode = errors.New("please enter a valid Australian postcode")
	ErrUnknownCampus   = errors.New("campus not found")
)
