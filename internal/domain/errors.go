package domain

import "errors"

// Error message string constants - single source of truth for error messages
const (
	ErrMsgUserNotFound        = "user not found"
	ErrMsgInsufficientFunds   = "insufficient funds"
	ErrMsgInvalidDrawCount    = "draw count must be 1 or 10"
	ErrMsgAlreadySignedIn     = "already signed in today"
	ErrMsgCodeNotFound        = "redeem code not found"
	ErrMsgCodeAlreadyRedeemed = "redeem code already used"
	ErrMsgInvalidInput        = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound        = errors.New(ErrMsgUserNotFound)
	ErrInsufficientFunds   = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidDrawCount    = errors.New(ErrMsgInvalidDrawCount)
	ErrAlreadySignedIn     = errors.New(ErrMsgAlreadySignedIn)
	ErrCodeNotFound        = errors.New(ErrMsgCodeNotFound)
	ErrCodeAlreadyRedeemed = errors.New(ErrMsgCodeAlreadyRedeemed)
	ErrInvalidInput        = errors.New(ErrMsgInvalidInput)
)
