package proto

import "errors"

var (
	// ErrUnauthorized is returned when the caller is not authorized to
	// perform an action.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidPagination is returned when page or page size is less than one.
	ErrInvalidPagination = errors.New("invalid pagination parameters")
	// ErrScopeUnresolved is returned when a collector caller's own collector
	// name cannot be resolved from their member number.
	ErrScopeUnresolved = errors.New("collector scope could not be resolved")
	// ErrAlreadyDecided is returned when a decision is attempted on a payment
	// request that is no longer pending. The stored record is left unchanged.
	ErrAlreadyDecided = errors.New("payment request already decided")
	// ErrStorageUnavailable is returned when the backing store cannot be
	// reached in time. It is safe to retry.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrMemberNotFound is returned when a member is not found.
	ErrMemberNotFound = errors.New("member not found")
	// ErrCollectorNotFound is returned when a collector is not found.
	ErrCollectorNotFound = errors.New("collector not found")
	// ErrPaymentNotFound is returned when a payment request is not found.
	ErrPaymentNotFound = errors.New("payment request not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPayment is returned when a payment submission has a
	// non-positive amount or an unknown type.
	ErrInvalidPayment = errors.New("invalid payment request")
)
