package models

import "errors"

// Sentinel errors shared across the storage and action layers.
var (
	// ErrNotFound indicates the referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a uniqueness constraint rejected the write.
	ErrDuplicate = errors.New("duplicate")

	// ErrInsufficientPoints indicates a debit larger than the current balance.
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrNotAuthorized indicates the acting profile may not perform the operation.
	ErrNotAuthorized = errors.New("not authorized")
)
