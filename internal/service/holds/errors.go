package holds

import "errors"

var (
	ErrHoldNotFound     = errors.New("hold not found")
	ErrHoldExpired      = errors.New("hold expired")
	ErrAlreadyConfirmed = errors.New("booking already confirmed")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrTryAgain         = errors.New("transaction conflict, try again")
)
