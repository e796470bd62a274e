package domain

import "errors"

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")
	// ErrFeatureDisabled will throw if the requested feature is turned off by its flag
	ErrFeatureDisabled = errors.New("feature disabled")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")
	ErrInvalidName    = errors.New("Invalid name")
	ErrTooManyItems   = errors.New("too many items")
)
