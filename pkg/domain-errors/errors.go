// Package domainerrors provides coded errors for the service boundary.
//
// Every error that crosses a handler carries a Code. Codes are a closed set:
// evidence rejection kinds are terminal for the submitted evidence and map to
// 4xx, while infrastructure kinds (oracle failure, confirmation timeout) map
// to 5xx so callers know the same input is safe to retry.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for transport mapping and telemetry.
type Code string

// Generic codes.
const (
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_error"
	CodeInvalidInput       Code = "invalid_input"
	CodeNotFound           Code = "not_found"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeConflict           Code = "conflict"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
	CodeInvariantViolation Code = "invariant_violation"
)

// Evidence rejection kinds. All are terminal for the submitted evidence:
// retrying with the same input yields the same rejection.
const (
	CodeInvalidProof             Code = "invalid_proof"
	CodeUnknownGroupRoot         Code = "unknown_group_root"
	CodeMessageBindingMismatch   Code = "message_binding_mismatch"
	CodeSignerMismatch           Code = "signer_mismatch"
	CodeInvalidBindingSignature  Code = "invalid_binding_signature"
	CodeAccountNotFound          Code = "account_not_found"
	CodeNoLogsFound              Code = "no_logs_found"
	CodeEventSignatureMismatch   Code = "event_signature_mismatch"
	CodeRoomIDMismatch           Code = "room_id_mismatch"
	CodePurchaserAccountNotFound Code = "purchaser_account_not_found"
)

// Retryable infrastructure kinds, distinct from rejections so clients can
// retry with the same input instead of treating the failure as terminal.
const (
	CodeConfirmationTimeout Code = "confirmation_timeout"
	CodeOracleInfra         Code = "oracle_infra_error"
)

// GatewayError is the error type surfaced at the HTTP boundary.
type GatewayError struct {
	Code    Code
	Message string
	Err     error
}

func (e GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e GatewayError) Unwrap() error { return e.Err }

// New creates a coded error.
func New(code Code, message string) error {
	return GatewayError{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return GatewayError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. If err already
// carries a code, the outer code wins; the chain stays inspectable via
// errors.Is / errors.As.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return GatewayError{Code: code, Message: message, Err: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var gw GatewayError
	for errors.As(err, &gw) {
		if gw.Code == code {
			return true
		}
		err = gw.Err
		gw = GatewayError{}
	}
	return false
}

// CodeOf returns the outermost code in the chain, or CodeInternal when the
// error carries no code.
func CodeOf(err error) Code {
	var gw GatewayError
	if errors.As(err, &gw) {
		return gw.Code
	}
	return CodeInternal
}

// Is delegates to errors.Is; kept so callers need only this package.
func Is(err, target error) bool { return errors.Is(err, target) }

// IsRetryable reports whether the caller may retry with the same input.
func IsRetryable(err error) bool {
	code := CodeOf(err)
	return code == CodeConfirmationTimeout || code == CodeOracleInfra || code == CodeTimeout
}

// ToHTTPStatus maps a code to an HTTP status. Rejection kinds are client
// errors; retryable infrastructure kinds are server errors.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation, CodeInvalidInput, CodeInvariantViolation,
		CodeInvalidProof, CodeUnknownGroupRoot, CodeMessageBindingMismatch,
		CodeSignerMismatch, CodeInvalidBindingSignature, CodeAccountNotFound,
		CodeNoLogsFound, CodeEventSignatureMismatch, CodeRoomIDMismatch,
		CodePurchaserAccountNotFound:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	case CodeConfirmationTimeout:
		return http.StatusGatewayTimeout
	case CodeOracleInfra:
		return http.StatusBadGateway
	case CodeTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
