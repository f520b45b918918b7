package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrOutOfRange indicates a numeric input outside its permitted bounds,
// e.g. an account number sequence beyond eight digits.
var ErrOutOfRange = errors.New("value out of range")

// ErrDuplicateAccountNumber indicates a collision on a freshly generated
// account number. Callers are expected to treat this as a distinct condition
// from generic validation failures.
var ErrDuplicateAccountNumber = errors.New("account number already exists")

// ErrInactiveAccount indicates an operation on an account whose status is not ACTIVE.
var ErrInactiveAccount = errors.New("account is not active")

// ErrInsufficientBalance indicates a withdrawal or transfer exceeding the current balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrUnauthorized indicates failed authentication (unknown login or wrong password).
var ErrUnauthorized = errors.New("unauthorized")

// ErrConfiguration indicates malformed generator or application parameters.
// Configuration errors are rejected before any I/O or state change.
var ErrConfiguration = errors.New("configuration error")
