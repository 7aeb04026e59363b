package domain

import (
	"context"
	"errors"
)

// ErrorKind classifies errors for transport mapping.
type ErrorKind string

const (
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindTimeout         ErrorKind = "timeout"
	KindUnavailable     ErrorKind = "unavailable"
	KindCanceled        ErrorKind = "canceled"
	KindInternal        ErrorKind = "internal"
)

var (
	ErrInvalidPhoneNumber  = errors.New("invalid phone number format, must be 10-15 digits")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantExists   = errors.New("participant already exists")
	ErrStoreTimeout        = errors.New("store operation timed out")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// KindOf returns the kind of err. A cancelled context wins over any store
// classification wrapped around it. Unclassified errors are KindInternal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, ErrInvalidPhoneNumber):
		return KindInvalidArgument
	case errors.Is(err, ErrParticipantNotFound):
		return KindNotFound
	case errors.Is(err, ErrParticipantExists):
		return KindConflict
	case errors.Is(err, ErrStoreTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrStoreUnavailable):
		return KindUnavailable
	}
	return KindInternal
}
