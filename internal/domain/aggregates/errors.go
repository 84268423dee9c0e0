package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes aggregate failure semantics across domains.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "validation"
	CodeNotFound           ErrorCode = "not_found"
	CodeConflict           ErrorCode = "conflict"
	CodeInvariantViolation ErrorCode = "invariant_violation"
	CodePreconditionFailed ErrorCode = "precondition_failed"
	CodeRetryable          ErrorCode = "retryable"
	CodeInternal           ErrorCode = "internal"
)

// Reason names the specific domain rule behind a failure, so callers
// and tests can tell apart, say, two different validation errors
// without parsing messages.
type Reason string

const (
	ReasonTypeMismatch      Reason = "type_mismatch"
	ReasonTypeNotSet        Reason = "type_not_set"
	ReasonOutstandingDebt   Reason = "outstanding_debt"
	ReasonSelfInclusion     Reason = "self_inclusion"
	ReasonTooManyInclusions Reason = "too_many_inclusions"
	ReasonNestedBundle      Reason = "nested_bundle"
	ReasonNoAddendum        Reason = "no_addendum"
	ReasonAlreadyAssigned   Reason = "already_assigned"
	ReasonDualAssignment    Reason = "dual_assignment"
	ReasonNoSuchField       Reason = "no_such_field"
)

// Error is the canonical aggregate error wrapper.
type Error struct {
	Code    ErrorCode
	Reason  Reason
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an aggregate error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// NewRuleError builds an aggregate error for a named domain rule.
func NewRuleError(code ErrorCode, reason Reason, op, message string) error {
	return &Error{
		Code:    code,
		Reason:  reason,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
	}
}

// Wrap annotates an existing error with aggregate error semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode checks whether err (or wrapped err) carries the given aggregate code.
func IsCode(err error, code ErrorCode) bool {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Code == code
}

// CodeOf extracts the aggregate error code when available.
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}

// IsReason checks whether err (or wrapped err) names the given rule.
func IsReason(err error, reason Reason) bool {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Reason == reason
}

// ReasonOf extracts the rule name when available.
func ReasonOf(err error) Reason {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Reason
}
