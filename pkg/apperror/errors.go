package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies domain errors so they can be matched with errors.Is
// regardless of their message
type Kind string

const (
	KindAuthRequired  Kind = "auth_required"
	KindEmptyCart     Kind = "empty_cart"
	KindOutOfStock    Kind = "out_of_stock"
	KindStockExceeded Kind = "stock_exceeded"
	KindNoSuchLine    Kind = "no_such_line"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches two AppErrors of the same non-empty Kind
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	if e.Kind == "" || t.Kind == "" {
		return e == t
	}
	return e.Kind == t.Kind
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable      = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// Checkout and cart errors. All of them are raised before any state is
// mutated and are recoverable by the operator.
var (
	ErrAuthRequired  = &AppError{Code: http.StatusUnauthorized, Kind: KindAuthRequired, Message: "Sign in to complete the sale"}
	ErrEmptyCart     = &AppError{Code: http.StatusBadRequest, Kind: KindEmptyCart, Message: "Cart is empty. Add items before payment."}
	ErrOutOfStock    = &AppError{Code: http.StatusConflict, Kind: KindOutOfStock, Message: "Item is out of stock"}
	ErrStockExceeded = &AppError{Code: http.StatusConflict, Kind: KindStockExceeded, Message: "Quantity exceeds available stock"}
	ErrNoSuchLine    = &AppError{Code: http.StatusNotFound, Kind: KindNoSuchLine, Message: "Item is not in the cart"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewOutOfStockError names the item that cannot be added
func NewOutOfStockError(itemName string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindOutOfStock,
		Message: fmt.Sprintf("%s is out of stock", itemName),
	}
}

// NewStockExceededError reports how many units are available
func NewStockExceededError(itemName string, stock int) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindStockExceeded,
		Message: fmt.Sprintf("Only %d of %s in stock", stock, itemName),
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}

// ReplicationError wraps a failed push to an external mirror. It is only
// ever logged; the local ledger stays authoritative.
type ReplicationError struct {
	Sink string
	Op   string
	Err  error
}

func (e *ReplicationError) Error() string {
	return fmt.Sprintf("replication to %s failed (%s): %v", e.Sink, e.Op, e.Err)
}

func (e *ReplicationError) Unwrap() error {
	return e.Err
}
