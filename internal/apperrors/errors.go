package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a non-positive or unparseable monetary magnitude.
// Mutations reject it before any state change is applied.
var ErrInvalidAmount = errors.New("amount must be a positive magnitude")

// ErrPersist indicates the persistence collaborator failed after a mutation
// was already applied in memory. Callers surface it as a warning, not a failure;
// the in-memory state is not rolled back.
var ErrPersist = errors.New("persistence failed")
