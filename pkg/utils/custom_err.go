package utils

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("record not found")
	ErrInvalidState        = errors.New("invalid state transition")
	ErrAuthenticity        = errors.New("signature verification failed")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrDatabaseError       = errors.New("database error")
)
