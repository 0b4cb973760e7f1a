package domain

// Stable validation codes surfaced to callers. These form a closed set; the UI
// keys its form-error messages off them, so values must never change.
const (
	CodeInvalidTime      = "INVALID_TIME"
	CodeUnsafeInterval   = "UNSAFE_INTERVAL"
	CodeExceedDailyLimit = "EXCEED_DAILY_LIMIT"
	CodeDuplicateTime    = "DUPLICATE_TIME"
	CodeInvalidDateRange = "INVALID_DATE_RANGE"
	CodeConflict         = "CONFLICT"
)

// ValidationError describes a single rule violation found while validating a
// schedule. Code is one of the Code* constants; Field names the offending
// schedule field where one can be identified.
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface so a ValidationError can be wrapped or
// logged like any other error, even though validation failures are normally
// carried inside a ValidationResult rather than returned as errors.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return e.Code + " (" + e.Field + "): " + e.Message
	}
	return e.Code + ": " + e.Message
}

// ValidationWarning is a non-blocking advisory produced during validation.
// Warnings never affect IsValid.
type ValidationWarning struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationResult collects every rule violation found for a schedule.
// Validation does not short-circuit: all problems are reported at once so the
// caller can display them together.
type ValidationResult struct {
	IsValid  bool                `json:"is_valid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
}

// NewValidationResult returns a result that is valid until an error is added.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []ValidationWarning{},
	}
}

// AddError records a rule violation and marks the result invalid.
func (r *ValidationResult) AddError(code, field, message string) {
	r.Errors = append(r.Errors, ValidationError{Code: code, Field: field, Message: message})
	r.IsValid = false
}

// AddWarning records a non-blocking advisory.
func (r *ValidationResult) AddWarning(code, field, message string) {
	r.Warnings = append(r.Warnings, ValidationWarning{Code: code, Field: field, Message: message})
}

// Merge folds another result into this one, preserving the invariant that
// IsValid is true only when no errors have been collected anywhere.
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	if !other.IsValid {
		r.IsValid = false
	}
}
