package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesOnCode(t *testing.T) {
	err := &Error{Code: CodeOrderSubmissionFailed, Message: "out of stock"}

	assert.ErrorIs(t, err, ErrOrderSubmissionFailed)
	assert.NotErrorIs(t, err, ErrPreconditionFailed)
	assert.Equal(t, "ORDER_SUBMISSION_FAILED: out of stock", err.Error())
}

func TestCodeOf_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("add item: %w", ErrDuplicateConfiguration)

	code, ok := CodeOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeDuplicateConfiguration, code)

	_, ok = CodeOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Code: CodeOrderSubmissionFailed, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "ORDER_SUBMISSION_FAILED", err.Error())
}
