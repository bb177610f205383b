package notification

import "fmt"

// ValidationError is returned when notification construction input fails
// validation. Field names the first invalid field encountered.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
	}
	return e.Message
}

// InvalidStateTransitionError is returned when a lifecycle transition is
// attempted from a state that does not permit it.
type InvalidStateTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid notification state transition %s -> %s", e.From, e.To)
}

// UnknownTemplateTypeError is returned by SelectTemplate for a notification
// type it has no template for. This indicates a programming error, not bad
// input; it is never retried.
type UnknownTemplateTypeError struct {
	Type Type
}

func (e *UnknownTemplateTypeError) Error() string {
	return fmt.Sprintf("no template for notification type %q", e.Type)
}
