package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrDuplicateCode indicates an account code is already registered.
var ErrDuplicateCode = fmt.Errorf("%w: account code already registered", ErrDuplicate)

// ErrDuplicateEntryNumber indicates an entry number is already taken.
var ErrDuplicateEntryNumber = fmt.Errorf("%w: entry number already used", ErrDuplicate)

// ErrUnknownAccount indicates a journal line references an account that is
// not registered or has been disabled.
var ErrUnknownAccount = fmt.Errorf("%w: unknown or disabled account", ErrValidation)

// ErrMixedLine indicates a journal line carries both a debit and a credit amount.
var ErrMixedLine = fmt.Errorf("%w: line has both debit and credit amounts", ErrValidation)

// ErrEmptyLine indicates a journal line carries neither a debit nor a credit amount.
var ErrEmptyLine = fmt.Errorf("%w: line has no debit or credit amount", ErrValidation)

// ErrMinLines indicates a journal entry has fewer than two lines.
var ErrMinLines = fmt.Errorf("%w: entry must have at least two lines", ErrValidation)

// ErrCurrencyMismatch indicates amounts in different currencies were combined.
var ErrCurrencyMismatch = fmt.Errorf("%w: currency mismatch", ErrValidation)

// ErrPrecision indicates an amount cannot be represented at the currency's precision.
var ErrPrecision = fmt.Errorf("%w: amount exceeds currency precision", ErrValidation)

// ErrStaleState indicates a state transition was attempted against an entry
// whose status changed since it was read. The caller may re-read and retry.
var ErrStaleState = fmt.Errorf("%w: entry status changed concurrently", ErrConflict)

// UnbalancedEntryError reports that an entry's debits and credits do not match.
// Difference is signed: total debits minus total credits.
type UnbalancedEntryError struct {
	Difference decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("entry does not balance: debits minus credits is %s", e.Difference.String())
}

func (e *UnbalancedEntryError) Unwrap() error {
	return ErrValidation
}

// IllegalTransitionError reports a disallowed journal entry status transition.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrConflict
}

// AppError wraps a lower-level failure with a status code and message.
// Used by the repository layer for infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
