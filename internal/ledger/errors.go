package ledger

// ValidationError reports split-policy input that would produce an
// inconsistent ledger entry (duplicate member, negative amount, totals
// that do not reconcile). These are caller-input errors: nothing is
// retried, nothing is partially written.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid split: " + e.Reason
}

func validationErr(reason string) error {
	return &ValidationError{Reason: reason}
}
