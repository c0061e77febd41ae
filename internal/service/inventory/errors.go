package inventory

import "errors"

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrUnitNotFound     = errors.New("pricing unit not found")
	ErrNoPricingUnits   = errors.New("resource has no pricing units")
	ErrInvalidCapacity  = errors.New("capacity must not be negative")
	ErrInvalidRange     = errors.New("range end must be after range start")
	ErrNoItems          = errors.New("no capacity items provided")
)
