package util

import "errors"

var (
	ErrPermissionDenied           = errors.New("permission denied")
	ErrCycleNotFound              = errors.New("cycle not found")
	ErrInvalidCycle               = errors.New("cycle end must not be before its start")
	ErrObjectiveNotFound          = errors.New("objective not found")
	ErrKeyResultNotFound          = errors.New("key result not found")
	ErrInvalidLifecycle           = errors.New("unknown key result lifecycle")
	ErrInvalidLifecycleTransition = errors.New("lifecycle transition not allowed")
	ErrKeyResultClosed            = errors.New("key result is closed for check-ins")
)
