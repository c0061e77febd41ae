package repository

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrResourceNotFound = errors.New("resource not found")
	ErrUnitNotFound     = errors.New("pricing unit not found")
	ErrHoldNotFound     = errors.New("hold not found")
)
