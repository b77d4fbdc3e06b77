package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/form-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrBadRequest   = errors.New("bad request")
	ErrStoreFailure = errors.New("store operation failed")

	// Form specific errors
	ErrFormNotFound = errors.New("form not found")

	// Upload specific errors
	ErrNoFileUploaded = errors.New("no file uploaded")
	ErrFileTooLarge   = errors.New("uploaded file is too large")
	ErrNotAnImage     = errors.New("uploaded file is not an image")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFormNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsBadRequest checks if error is caused by a malformed client request
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrNoFileUploaded) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrNotAnImage)
}
