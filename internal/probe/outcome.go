package probe

import "strconv"

// Kind discriminates the variants of an Outcome.
type Kind int

const (
	// KindUnset is the zero value. A probe never produces it; seeing one
	// at collation time means the result slot was never written.
	KindUnset Kind = iota
	KindStatus
	KindEmpty
	KindError
)

// Outcome is the classified result of checking one URL: an HTTP status
// code, or a sentinel standing in for "no valid status".
type Outcome struct {
	Kind   Kind
	Status int
	Reason string
}

// StatusOutcome returns an outcome carrying an HTTP status code.
func StatusOutcome(code int) Outcome {
	return Outcome{Kind: KindStatus, Status: code}
}

// EmptyOutcome returns the sentinel for a blank or missing URL.
func EmptyOutcome() Outcome {
	return Outcome{Kind: KindEmpty}
}

// ErrorOutcome returns the sentinel for an unrecoverable network failure,
// carrying a stable fault category.
func ErrorOutcome(reason string) Outcome {
	return Outcome{Kind: KindError, Reason: reason}
}

// Broken reports whether the outcome marks the URL as unusable.
// Status codes below 400 are the only healthy case; blank URLs and
// network failures always surface for manual review.
func (o Outcome) Broken() bool {
	if o.Kind == KindStatus {
		return o.Status >= 400
	}
	return true
}

// Label renders the outcome as the value written to the status column:
// the numeric status code, "empty", or "error: <kind>".
func (o Outcome) Label() string {
	switch o.Kind {
	case KindStatus:
		return strconv.Itoa(o.Status)
	case KindEmpty:
		return "empty"
	case KindError:
		return "error: " + o.Reason
	default:
		return "error: missing"
	}
}
