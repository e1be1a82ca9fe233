package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recipebook/backend/internal/apperror"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(apperror.NotFound("missing")))
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(apperror.Conflict("taken")))
	assert.Equal(t, apperror.Kind(""), apperror.KindOf(errors.New("plain")))
	assert.Equal(t, apperror.Kind(""), apperror.KindOf(nil))
}

func TestKindOf_WrappedError(t *testing.T) {
	inner := apperror.Forbidden("no")
	wrapped := fmt.Errorf("handling request: %w", inner)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(wrapped))
	assert.True(t, apperror.Is(wrapped, apperror.KindForbidden))
	assert.False(t, apperror.Is(wrapped, apperror.KindNotFound))
}

func TestErrorFormatting(t *testing.T) {
	assert.EqualError(t, apperror.NotFound("recipe not found"), "not_found: recipe not found")

	cause := errors.New("disk full")
	storageErr := apperror.Storage("failed to store image", cause)
	assert.EqualError(t, storageErr, "storage: failed to store image: disk full")
	assert.ErrorIs(t, storageErr, cause)
}

func TestValidationCarriesFields(t *testing.T) {
	err := apperror.Validation("invalid request body", map[string]string{"Title": "this field is required"})
	var appErr *apperror.Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "this field is required", appErr.Fields["Title"])
}
