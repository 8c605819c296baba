package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "component not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "test not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestNotFoundError_Wrapped(t *testing.T) {
	err := fmt.Errorf("loading component: %w", NewNotFoundError("component with id 3 not found"))

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, "component with id 3 not found", notFoundErr.Message)
}

func TestResourceNotFoundError(t *testing.T) {
	err := fmt.Errorf("checkout: %w", NewResourceNotFoundError("asset", "asset with id 9 does not exist"))

	nf, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, "asset", nf.Resource)
	assert.Equal(t, "asset with id 9 does not exist", nf.Error())
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "name", Message: "name is required"},
		{Field: "category_id", Message: "category_id is required"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
	assert.Nil(t, err.Max)
}

func TestValidationError_Fields(t *testing.T) {
	err := NewValidationError("validation failed",
		ValidationDetail{Field: "name", Message: "first"},
		ValidationDetail{Field: "name", Message: "second"},
		ValidationDetail{Field: "qty", Message: "qty must not be negative"},
	)

	fields := err.Fields()
	assert.Equal(t, "first", fields["name"])
	assert.Equal(t, "qty must not be negative", fields["qty"])
	assert.Len(t, fields, 2)
}

func TestQuantityBoundError(t *testing.T) {
	err := NewQuantityBoundError("assigned_qty", 0)

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	if assert.NotNil(t, ve.Max) {
		assert.Equal(t, 0, *ve.Max)
	}
	assert.Equal(t, "assigned_qty", ve.Details[0].Field)
	assert.Contains(t, ve.Details[0].Message, "0")
}

func TestConflictAndForbidden(t *testing.T) {
	var err error = NewConflictError("stock changed")
	_, ok := IsConflictError(err)
	assert.True(t, ok)
	_, ok = IsForbiddenError(err)
	assert.False(t, ok)

	err = NewForbiddenError("not allowed")
	fe, ok := IsForbiddenError(err)
	assert.True(t, ok)
	assert.Equal(t, "not allowed", fe.Error())
}

func TestDeadlockError(t *testing.T) {
	err := NewDeadlockError("max retries exceeded")

	de, ok := IsDeadlockError(err)
	assert.True(t, ok)
	assert.Equal(t, "max retries exceeded", de.Error())
}

func TestUnimplementedError(t *testing.T) {
	err := NewUnimplementedError("bulk checkout")

	ue, ok := IsUnimplementedError(err)
	assert.True(t, ok)
	assert.Equal(t, "bulk checkout", ue.Operation)
	assert.Equal(t, "bulk checkout is not implemented", err.Error())
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to query database", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "failed to query database")
	assert.Contains(t, err.Error(), "database error")
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("wrapper", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("no cause", nil)

	assert.Equal(t, "no cause", err.Error())
	assert.Nil(t, err.Unwrap())
}
