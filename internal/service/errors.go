package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure. Outer layers map kinds to transport
// status codes; the message is safe to show to the caller.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindNotFound
	KindForbidden
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "internal"
	}
}

// Error is the only error type returned by the service layer
type Error struct {
	Kind    Kind
	Message string
	// Err is the underlying cause, kept for logs only
	Err error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a bare kind sentinel such as ErrNotFound against any error of
// the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Message != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

// Kind sentinels for errors.Is
var (
	ErrInternal        = &Error{Kind: KindInternal}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
)

// KindOf returns the kind of err. Errors that did not come from this
// package are treated as internal.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// Domain rule messages
const (
	MsgManualListQuery    = "manual lists cannot have a query"
	MsgSmartListQuery     = "smart lists must have a query"
	MsgSmartListAdd       = "smart lists cannot be added to"
	MsgSmartListRemove    = "smart lists cannot be removed from"
	MsgAlreadyInList      = "bookmark already in list"
	MsgAlreadyNotInList   = "bookmark already not in list"
	MsgListOwnParent      = "a list cannot be its own parent"
	MsgListParentCycle    = "parent would create a cycle"
	MsgListNameRequired   = "list name is required"
	MsgListIconRequired   = "list icon is required"
	MsgInvalidListType    = "list type must be manual or smart"
	MsgInvalidBookmarkURL = "bookmark URL must be an absolute http(s) URL"
)

func unauthenticated() error {
	return &Error{Kind: KindUnauthenticated, Message: "authentication required"}
}

func notFound(resource string) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func forbidden(resource string) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf("not authorized to access this %s", resource)}
}

func invalidArgument(message string) error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func internal(err error) error {
	return &Error{Kind: KindInternal, Message: "an unexpected error occurred", Err: err}
}
