package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrPersistence indicates that the dataset store failed to load or save the document.
var ErrPersistence = errors.New("persistence error")

// ErrConfirmationRequired indicates that an operation raised warnings and must
// be resubmitted with an explicit confirmation to proceed.
var ErrConfirmationRequired = errors.New("confirmation required")
