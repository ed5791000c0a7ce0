package provider

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrValidation marks a missing or invalid required field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an operation targeting a missing object.
	ErrNotFound = errors.New("object not found")
	// ErrCycle marks a malformed parent graph found during traversal.
	ErrCycle = errors.New("parent cycle detected")
	// ErrCascadeLimit marks a cascade that exceeded the configured
	// object budget.
	ErrCascadeLimit = errors.New("cascade object limit exceeded")
	// ErrStorageIO marks a fatal blob read or write failure.
	ErrStorageIO = errors.New("blob storage failure")
)

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
