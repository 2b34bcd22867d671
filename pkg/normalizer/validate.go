package normalizer

import (
	"errors"
)

// Messages surfaced verbatim to the person filling in the form.
var (
	errMissingRequired = errors.New("Please provide at least name and age.")
	errConsentRequired = errors.New("Consent is required to share this data (simulation).")
	errInvalidAge      = errors.New("Invalid age.")
)

// ValidationError marks a rejected manual submission. Bulk import never
// produces it; imported records only go through the lenient Normalize.
type ValidationError struct {
	reason error
}

func (e ValidationError) Error() string {
	return e.reason.Error()
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// ValidateSubmission is the strict gate applied to interactively entered
// data, before normalization. It checks presence of fullname and age, the
// consent flag, and that age parses to an integer in [0,130]. Import
// deliberately skips this gate: bulk data is sanitized best-effort, manual
// entry is hard-validated.
func ValidateSubmission(data map[string]interface{}) error {
	fullname := getString(data["fullname"])
	age := getString(data["age"])
	if fullname == "" || age == "" {
		return ValidationError{reason: errMissingRequired}
	}
	if !getBool(data["consent"]) {
		return ValidationError{reason: errConsentRequired}
	}
	parsed, ok := ParseAge(age)
	if !ok || parsed < 0 || parsed > 130 {
		return ValidationError{reason: errInvalidAge}
	}
	return nil
}
