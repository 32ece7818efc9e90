package service

import "errors"

// Business errors, wrapped with %w by the workflows and translated to HTTP
// status codes at the transport boundary.
var (
	ErrValidation         = errors.New("validation")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidCoupon      = errors.New("invalid coupon")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrExpired            = errors.New("expired")
	ErrInvalidToken       = errors.New("invalid token")
)
