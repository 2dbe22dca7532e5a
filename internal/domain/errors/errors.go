package errors

import (
	"net/http"

	"shophub/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches errors carrying the same business error code, so copies made
// through WithDetails still satisfy errors.Is against the sentinel.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)

	return ok && other.errorCode == e.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Identity challenge errors
	ErrChallengeNotFound = NewBaseError(
		http.StatusNotFound,
		"CHALLENGE_NOT_FOUND",
		"verification code not found, please request a new one",
		"",
	)

	ErrChallengeExpired = NewBaseError(
		http.StatusGone,
		"CHALLENGE_EXPIRED",
		"verification code has expired, please request a new one",
		"",
	)

	ErrAttemptsExceeded = NewBaseError(
		http.StatusTooManyRequests,
		"ATTEMPTS_EXCEEDED",
		"too many attempts, please request a new verification code",
		"",
	)

	ErrCodeMismatch = NewBaseError(
		http.StatusUnauthorized,
		"CODE_MISMATCH",
		"invalid verification code, please try again",
		"",
	)

	ErrCodeDelivery = NewBaseError(
		http.StatusBadGateway,
		"DELIVERY_FAILED",
		"could not deliver the verification code",
		"",
	)

	ErrUnknownUser = NewBaseError(
		http.StatusNotFound,
		"UNKNOWN_USER",
		"user not found, a name is required to create an account",
		"",
	)

	// Authentication / authorization errors
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"please login to continue",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	// Payment errors
	ErrInvalidRequest = NewBaseError(
		http.StatusBadRequest,
		"INVALID_REQUEST",
		"payment request is missing required fields",
		"",
	)

	ErrGatewayDeclined = NewBaseError(
		http.StatusPaymentRequired,
		"GATEWAY_DECLINED",
		"payment was declined, please try a different payment method",
		"",
	)

	ErrGatewayUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"GATEWAY_UNAVAILABLE",
		"payment gateway is not available",
		"",
	)

	ErrPaymentInFlight = NewBaseError(
		http.StatusConflict,
		"PAYMENT_IN_FLIGHT",
		"a payment for this checkout is already being processed",
		"",
	)

	ErrTransactionNotFound = NewBaseError(
		http.StatusNotFound,
		"TRANSACTION_NOT_FOUND",
		"transaction not found",
		"",
	)

	// Checkout errors
	ErrPreconditionNotMet = NewBaseError(
		http.StatusConflict,
		"PRECONDITION_NOT_MET",
		"checkout step is incomplete",
		"",
	)

	ErrSessionNotFound = NewBaseError(
		http.StatusNotFound,
		"SESSION_NOT_FOUND",
		"checkout session not found",
		"",
	)

	ErrSessionClosed = NewBaseError(
		http.StatusConflict,
		"SESSION_CLOSED",
		"checkout session is no longer active",
		"",
	)

	ErrEmptyCart = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_CART",
		"cart is empty",
		"",
	)

	// Order ledger errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"order not found",
		"",
	)

	ErrInvalidTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_TRANSITION",
		"order status does not allow this operation",
		"",
	)

	// Address errors
	ErrAddressNotFound = NewBaseError(
		http.StatusNotFound,
		"ADDRESS_NOT_FOUND",
		"address not found",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"resource conflict",
		"",
	)
)
