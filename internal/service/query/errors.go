package query

import "errors"

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrInvalidRange     = errors.New("range end must be after range start")
	ErrRangeTooLarge    = errors.New("requested range is too large")
)
