package domain

import "errors"

type ErrorCode string

const (
	CodeNoSizeSelected         ErrorCode = "NO_SIZE_SELECTED"
	CodeDuplicateConfiguration ErrorCode = "DUPLICATE_CONFIGURATION"
	CodeInvalidQuantity        ErrorCode = "INVALID_QUANTITY"
	CodePreconditionFailed     ErrorCode = "PRECONDITION_FAILED"
	CodeOrderSubmissionFailed  ErrorCode = "ORDER_SUBMISSION_FAILED"
	CodeSubmissionInProgress   ErrorCode = "SUBMISSION_IN_PROGRESS"
)

// Error is a user-facing failure of a cart or checkout action. Two errors
// match under errors.Is when their codes are equal, so a submission failure
// carrying a backend message still matches ErrOrderSubmissionFailed.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrNoSizeSelected         = &Error{Code: CodeNoSizeSelected, Message: "select a size"}
	ErrDuplicateConfiguration = &Error{Code: CodeDuplicateConfiguration, Message: "this product in this size is already in the cart"}
	ErrInvalidQuantity        = &Error{Code: CodeInvalidQuantity, Message: "quantity must be positive"}
	ErrPreconditionFailed     = &Error{Code: CodePreconditionFailed, Message: "checkout requires a logged-in client and a non-empty cart"}
	ErrOrderSubmissionFailed  = &Error{Code: CodeOrderSubmissionFailed, Message: "could not create the order"}
	ErrSubmissionInProgress   = &Error{Code: CodeSubmissionInProgress, Message: "this order is already being submitted"}
)

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}
