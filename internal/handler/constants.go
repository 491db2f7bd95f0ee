package handler

// Generic HTTP error messages for client responses.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
)

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUserNotFoundError    = "User not found"
	ErrMsgNotEnoughDiamonds    = "Not enough diamonds"
	ErrMsgInvalidDrawCountErr  = "Draw count must be 1 or 10"
	ErrMsgAlreadySignedInError = "You have already signed in today"
	ErrMsgCodeNotFoundError    = "Redeem code does not exist"
	ErrMsgCodeUsedError        = "You have already used this redeem code"
	ErrMsgInvalidInputError    = "Invalid request. Please check your inputs."
)

// Log messages
const (
	LogMsgDecodeFailed  = "Failed to decode request"
	LogMsgServiceFailed = "Service call failed"
)

// Query parameters
const QueryParamLimit = "limit"
