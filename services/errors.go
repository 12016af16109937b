package services

import "errors"

// Sentinel errors surfaced to controllers. Anything else coming out of a
// service is treated as a storage failure and mapped to a 500.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrPostNotFound  = errors.New("post not found")
	ErrInvalidFilter = errors.New("invalid feed filter")
	ErrBlocked       = errors.New("users are in a block relationship")
)
