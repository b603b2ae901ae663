package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("db down")
	err := Wrap(cause, CodeDatabaseError, "Query failed", http.StatusInternalServerError)

	assert.Contains(t, err.Error(), "Query failed")
	assert.Contains(t, err.Error(), "db down")
	assert.ErrorIs(t, err, cause)
}

func TestAppError_WithDetails(t *testing.T) {
	t.Parallel()

	base := ErrValidationFailed
	withDetails := base.WithDetails(map[string]string{"email": "required"})

	// Исходная ошибка не мутирует
	assert.Nil(t, base.Details)
	assert.NotNil(t, withDetails.Details)
	assert.Equal(t, base.Code, withDetails.Code)
}

// Err и HTTPCode не попадают в JSON-ответ
func TestAppError_MarshalJSON(t *testing.T) {
	t.Parallel()

	err := Wrap(errors.New("secret detail"), CodeInternalError, "Internal server error", http.StatusInternalServerError)
	data, mErr := json.Marshal(err)
	require.NoError(t, mErr)

	assert.NotContains(t, string(data), "secret detail")
	assert.NotContains(t, string(data), "500")
	assert.Contains(t, string(data), "Internal server error")
}

func TestAsAppError(t *testing.T) {
	t.Parallel()

	appErr, ok := AsAppError(ErrUserNotFound)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestPredefinedErrors_HTTPCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusUnauthorized, ErrInvalidCredentials.HTTPCode)
	assert.Equal(t, http.StatusUnauthorized, ErrAccountInactive.HTTPCode)
	assert.Equal(t, http.StatusForbidden, ErrInsufficientHierarchy.HTTPCode)
	assert.Equal(t, http.StatusConflict, ErrEmailAlreadyExists.HTTPCode)
	assert.Equal(t, http.StatusBadRequest, ErrInvalidResetToken.HTTPCode)
}
