package interaction

import "errors"

// Common errors returned by interaction data providers.
var (
	// ErrLookupFailed is returned when an interaction lookup fails for any general reason.
	ErrLookupFailed = errors.New("interaction lookup failed")

	// ErrNotFound is returned when the dataset has no entry for the medication.
	// Absence of an entry is not a failure and carries no safety meaning.
	ErrNotFound = errors.New("medication not found in interaction dataset")

	// ErrInvalidResponse is returned when the provider response cannot be parsed or is malformed.
	ErrInvalidResponse = errors.New("invalid response from interaction data provider")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry.
	ErrTransientFailure = errors.New("transient interaction provider failure")

	// ErrInvalidConfig is returned when the provider configuration is invalid.
	ErrInvalidConfig = errors.New("invalid interaction provider configuration")
)
