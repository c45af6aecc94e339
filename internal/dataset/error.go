package dataset

import "errors"

// Error definitions for the dataset package.
var (
	ErrNotFound          = errors.New("variant not found in registry")
	ErrAlreadyRegistered = errors.New("variant is already registered in the registry")
)
