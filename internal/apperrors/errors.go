package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the principal does not own or may not act on the resource.
var ErrForbidden = errors.New("operation not permitted")

// ErrAccountInactive indicates that an account is frozen or closed and cannot
// participate in transfers.
var ErrAccountInactive = errors.New("account is not active")

// ErrInsufficientFunds indicates that a conditional debit found less balance
// than the requested amount. Use InsufficientFundsError to carry the
// last-observed balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrIdempotencyConflict indicates that an idempotency key was reused after a
// terminal non-success outcome; the caller must use a new key.
var ErrIdempotencyConflict = errors.New("idempotency key already used for a failed transaction")

// ErrTransient marks store errors caused by concurrent contention (write
// conflict, serialization failure, ambiguous commit). They are retried
// internally and never surfaced to callers.
var ErrTransient = errors.New("transient store error")

// ErrEngineFailure is surfaced after the transfer retry budget is exhausted.
// Resubmitting with the same idempotency key is safe.
var ErrEngineFailure = errors.New("transfer engine failure, please retry")

// InsufficientFundsError carries the balance last observed before the debit
// condition failed. The value is diagnostic only and not guaranteed fresh.
type InsufficientFundsError struct {
	CurrentBalance int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: current balance %d", e.CurrentBalance)
}

// Is makes errors.Is(err, ErrInsufficientFunds) match.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// IsTransient reports whether err belongs to the retryable error class.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// AppError wraps a cause with a status code and a stable message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
