package availability

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange     = errors.New("check-out must be after check-in")
	ErrResourceNotFound = errors.New("resource not found")
	ErrUnitNotFound     = errors.New("pricing unit not found")

	// ErrTryAgain surfaces a serialization conflict in the authoritative
	// phase. The engine never retries blindly; retrying is the caller's
	// decision.
	ErrTryAgain = errors.New("transaction conflict, try again")
)

type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.RetryAfter)
}
