package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-ems/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		httpErr := apperror.ToHTTP(apperror.Conflict("User already exists."))

		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, apperror.CodeConflict, httpErr.Code)
		assert.Equal(t, "User already exists.", httpErr.Message)
	})

	t.Run("wrapped app error", func(t *testing.T) {
		err := fmt.Errorf("step 1: %w", apperror.MissingResource("Image is required"))

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "Image is required", httpErr.Message)
	})

	t.Run("unknown error is hidden", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.NotContains(t, httpErr.Message, "pq")
	})
}

func TestDependency(t *testing.T) {
	cause := errors.New("smtp: 535 auth failed")
	err := apperror.Dependency(cause, "Failed to send email")

	assert.ErrorIs(t, err, cause)
	assert.True(t, apperror.Is(err, apperror.CodeDependencyFailed))
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)
	assert.Contains(t, err.Error(), "535")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeInternalError, "x", 500))
}

func TestWithCause(t *testing.T) {
	sentinel := apperror.MissingResource("User not found.")
	cause := errors.New("record not found")

	err := sentinel.WithCause(cause)

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, sentinel.Err)
}
