package pricing

import "fmt"

// InputValidationError rejects a request before any computation runs.
type InputValidationError struct {
	Field   string
	Message string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PricingFailure is returned by the option pricer when it cannot produce a
// finite price. Param names the offending input.
type PricingFailure struct {
	Param  string
	Reason string
}

func (e *PricingFailure) Error() string {
	return fmt.Sprintf("pricing failed on %s: %s", e.Param, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &InputValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
