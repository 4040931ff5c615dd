package errs

import (
	"errors"
	"slices"
)

// Category sentinels. Domain and usecase errors are marked with one of these
// so the transport layer can map them without knowing every concrete error.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("actor not permitted")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflicting state")
	ErrPolicyViolation = errors.New("policy violation")
	ErrSecurity        = errors.New("security check failed")
	ErrAmountExceeded  = errors.New("amount exceeded")
	ErrNotRefundable   = errors.New("not refundable")

	// Idempotency errors
	ErrIdempotencyInProgress = errors.New("idempotency in progress")
	ErrIdempotencyMismatch   = errors.New("idempotency key reused with different request")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

var categories = []error{
	ErrNotFound,
	ErrUnauthorized,
	ErrValidation,
	ErrConflict,
	ErrPolicyViolation,
	ErrSecurity,
	ErrAmountExceeded,
	ErrNotRefundable,
}

func isCategory(err error) bool {
	return slices.Contains(categories, err)
}

// Category returns the first category sentinel err is marked with, or nil.
func Category(err error) error {
	for _, c := range categories {
		if Is(err, c) {
			return c
		}
	}
	return nil
}
