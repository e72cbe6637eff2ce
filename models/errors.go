package models

import "errors"

// Sentinel errors shared by the storage and auth layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)
