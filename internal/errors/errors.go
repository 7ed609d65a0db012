package errors

import (
	"errors"
	"fmt"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidTable = "INVALID_TABLE"
	CodeInvalidOrder = "INVALID_ORDER"

	CodeConflict          = "CONFLICT"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeOutOfStock        = "OUT_OF_STOCK"

	CodeRemoteCall        = "REMOTE_CALL_FAILED"
	CodeOrderSubmitFailed = "ORDER_SUBMIT_FAILED"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Code    string
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Code:    CodeValidation,
		Message: message,
		Details: details,
	}
}

// NewInvalidTableError reports a scanned or typed table code that is not a
// table number in range.
func NewInvalidTableError(code string) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidTable,
		Message: "Invalid table number. Please scan a valid QR code.",
		Details: []ValidationDetail{{Field: "table", Message: fmt.Sprintf("%q is not a valid table number", code)}},
	}
}

// NewInvalidOrderError reports a checkout attempted without a table or with an
// empty cart.
func NewInvalidOrderError(details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidOrder,
		Message: "Invalid order: Missing table or empty cart",
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func IsInvalidTable(err error) bool {
	ve, ok := IsValidationError(err)
	return ok && ve.Code == CodeInvalidTable
}

func IsInvalidOrder(err error) bool {
	ve, ok := IsValidationError(err)
	return ok && ve.Code == CodeInvalidOrder
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Code: CodeConflict, Message: message}
}

// NewInvalidTransitionError reports a status change other than the single
// legal next step.
func NewInvalidTransitionError(from, to string) *ConflictError {
	return &ConflictError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot move order from %s to %s", from, to),
	}
}

// NewOutOfStockError reports an attempt to order a drink with no stock left.
func NewOutOfStockError(name string) *ConflictError {
	return &ConflictError{
		Code:    CodeOutOfStock,
		Message: fmt.Sprintf("%s is out of stock", name),
	}
}

func IsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func IsUnauthorizedError(err error) (*UnauthorizedError, bool) {
	var ue *UnauthorizedError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

type DeadlockError struct {
	Message string
}

func (e *DeadlockError) Error() string {
	return e.Message
}

func NewDeadlockError(message string) *DeadlockError {
	return &DeadlockError{Message: message}
}

func IsDeadlockError(err error) (*DeadlockError, bool) {
	var de *DeadlockError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// RemoteCallError wraps a failed store operation. Callers log the cause and
// show Message to the user.
type RemoteCallError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RemoteCallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RemoteCallError) Unwrap() error {
	return e.Cause
}

func NewRemoteCallError(message string, cause error) *RemoteCallError {
	return &RemoteCallError{
		Code:    CodeRemoteCall,
		Message: message,
		Cause:   cause,
	}
}

// NewOrderSubmitError reports a checkout that did not reach the store. The
// customer's cart is left as it was.
func NewOrderSubmitError(cause error) *RemoteCallError {
	return &RemoteCallError{
		Code:    CodeOrderSubmitFailed,
		Message: "Failed to submit order. Please try again.",
		Cause:   cause,
	}
}

func IsRemoteCallError(err error) (*RemoteCallError, bool) {
	var rc *RemoteCallError
	if errors.As(err, &rc) {
		return rc, true
	}
	return nil, false
}
