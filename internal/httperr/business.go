package httperr

import (
	"errors"
	"net/http"
)

// Kind is the stable error category surfaced to API callers.
type Kind string

const (
	KindValidation          Kind = "ValidationError"
	KindInvalidSlot         Kind = "InvalidSlotError"
	KindInvalidAvailability Kind = "InvalidAvailabilityError"
	KindConflict            Kind = "BookingConflictError"
	KindNotFound            Kind = "NotFoundError"
	KindUnauthorized        Kind = "UnauthorizedError"
	KindRateLimited         Kind = "RateLimitedError"
	KindInternal            Kind = "InternalError"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) error {
	return ErrBusiness(KindValidation, code, message)
}

func InvalidSlot(code, message string) error {
	return ErrBusiness(KindInvalidSlot, code, message)
}

func InvalidAvailability(code, message string) error {
	return ErrBusiness(KindInvalidAvailability, code, message)
}

func Conflict(code, message string) error {
	return ErrBusiness(KindConflict, code, message)
}

func ErrNotFound(code, message string) error {
	return ErrBusiness(KindNotFound, code, message)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf reports the kind of err, or KindInternal for anything that is not a BusinessError.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation, KindInvalidSlot, KindInvalidAvailability:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
