package todo

import "errors"

// Kind discriminates the recoverable conditions the engine reports.
type Kind int

const (
	// KindLength means a name is outside 1..MaxNameLength characters.
	KindLength Kind = iota + 1
	// KindDuplicateName means another list already has the name.
	KindDuplicateName
	// KindNotFound means a referenced list or todo id does not exist.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindLength:
		return "length"
	case KindDuplicateName:
		return "duplicate_name"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the engine. Message is
// meant to be shown to the end user as is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// IsKind reports whether err is (or wraps) an engine Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

var (
	errListNameLength = &Error{Kind: KindLength, Message: "List name must be between 1 and 100 characters."}
	errListNameTaken  = &Error{Kind: KindDuplicateName, Message: "List name must be unique."}
	errTodoNameLength = &Error{Kind: KindLength, Message: "Todo must be between 1 and 100 characters."}

	// ErrListNotFound is returned when no list has the requested id.
	ErrListNotFound = &Error{Kind: KindNotFound, Message: "The specified list was not found."}
	// ErrTodoNotFound is returned when the list has no todo with the requested id.
	ErrTodoNotFound = &Error{Kind: KindNotFound, Message: "The specified todo was not found."}
)
