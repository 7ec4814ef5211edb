package calendar

import (
	"errors"
	"fmt"
)

// User-facing messages.
const (
	MsgEndBeforeStart    = "End time must be later than start time."
	MsgConflict          = "There is already an event during this time. Please choose a different time."
	MsgStaticDelete      = "Static data cannot be deleted."
	MsgStaticEdit        = "Static data cannot be edited."
	MsgPastEdit          = "You cannot edit events from past dates."
	MsgPastDelete        = "You cannot delete events from past dates."
	MsgTitleRequired     = "Title is required."
	MsgDateImmutable     = "An event cannot be moved to a different date."
	MsgInvalidTimeOfDay  = "Time must be between 1:00 and 12:59 with AM or PM."
	MsgInvalidDateKeyFmt = "Date must be in YYYY-MM-DD form."
	MsgInvalidColor      = "Color must be a hex value like #3366ff."
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindPolicy     ErrorKind = "policy"
	KindNotFound   ErrorKind = "not_found"
	KindDuplicate  ErrorKind = "duplicate"
)

var (
	// ErrValidation matches rejected form input: bad times or a conflicting interval.
	ErrValidation = errors.New("validation failed")
	// ErrPolicy matches edits or deletes blocked by the static or past-date rules.
	ErrPolicy = errors.New("operation not allowed")
	// ErrNotFound matches update or delete of an unknown id.
	ErrNotFound = errors.New("event not found")
	// ErrDuplicateID matches an insert whose id is already taken.
	ErrDuplicateID = errors.New("duplicate event id")
)

// Error is returned by every store and form operation. Message is the text
// shown to the user.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match on the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrPolicy:
		return e.Kind == KindPolicy
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrDuplicateID:
		return e.Kind == KindDuplicate
	}
	return false
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func policyError(msg string) *Error {
	return &Error{Kind: KindPolicy, Message: msg}
}

func notFoundError(id int64) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("no event with id %d", id)}
}

// UserMessage extracts the user-facing text from err, falling back to err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var calErr *Error
	if errors.As(err, &calErr) {
		return calErr.Message
	}
	return err.Error()
}
