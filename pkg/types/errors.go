package types

import "errors"

// Store lifecycle errors.
var (
	ErrInitialization    = errors.New("store initialization failed")
	ErrSchemaTooNew      = errors.New("schema version newer than code")
	ErrBackendClosed     = errors.New("backend closed during initialization")
	ErrNestedTransaction = errors.New("nested transactions are not supported")
)

// Entity operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
	ErrIntegrity   = errors.New("referential integrity violation")
	ErrInvariant   = errors.New("write succeeded but row is missing")
)
