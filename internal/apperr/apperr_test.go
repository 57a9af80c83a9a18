package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound.Status())
	assert.Equal(t, http.StatusBadRequest, InvalidInput.Status())
	assert.Equal(t, http.StatusUnprocessableEntity, Unprocessable.Status())
	assert.Equal(t, http.StatusUnprocessableEntity, Conflict.Status())
	assert.Equal(t, http.StatusInternalServerError, Internal.Status())
}

func TestWrappedErrorsKeepKindAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("handler: %w", Wrap(NotFound, cause, "venue not found"))

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, NotFound, ae.Kind)
	assert.ErrorIs(t, err, cause)
	assert.False(t, errors.As(cause, &ae))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "invalid_input: difficulty is required", Invalidf("%s is required", "difficulty").Error())
	assert.Equal(t, "internal", (&Error{}).Error())
}
