package apperrors

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoData       = errors.New("no data")
	ErrNoBundle     = errors.New("no log bundle configured")
)
