package calculator

import "errors"

var (
	// ErrInsufficientData is returned when a series is shorter than an indicator's window.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInvalidPeriod is returned for non-positive periods or windows.
	ErrInvalidPeriod = errors.New("period must be positive")
)
