package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromResponse(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedCode    string
		expectedMessage string
		expectedDetails []string
	}{
		{
			name:            "Detail string",
			status:          http.StatusNotFound,
			body:            `{"detail": "Product not found"}`,
			expectedCode:    appErrors.ErrCodeNotFound,
			expectedMessage: "Product not found",
		},
		{
			name:            "Validation list",
			status:          http.StatusUnprocessableEntity,
			body:            `{"detail": [{"loc": ["body", "email"], "msg": "field required", "type": "missing"}, {"loc": ["query", "quantity"], "msg": "not an int"}]}`,
			expectedCode:    appErrors.ErrCodeValidation,
			expectedMessage: "email: field required; quantity: not an int",
			expectedDetails: []string{"email: field required", "quantity: not an int"},
		},
		{
			name:            "Plain text body",
			status:          http.StatusBadGateway,
			body:            "upstream unavailable",
			expectedCode:    appErrors.ErrCodeThirdPartyError,
			expectedMessage: "upstream unavailable",
		},
		{
			name:            "Empty body falls back to status text",
			status:          http.StatusForbidden,
			body:            "",
			expectedCode:    appErrors.ErrCodeForbidden,
			expectedMessage: "Forbidden",
		},
		{
			name:            "JSON without detail uses the raw body",
			status:          http.StatusBadRequest,
			body:            `{"error": "bad"}`,
			expectedCode:    appErrors.ErrCodeBadRequest,
			expectedMessage: `{"error": "bad"}`,
		},
		{
			name:            "Conflict",
			status:          http.StatusConflict,
			body:            `{"detail": "Email already registered"}`,
			expectedCode:    appErrors.ErrCodeDuplicateEntry,
			expectedMessage: "Email already registered",
		},
		{
			name:            "Rate limited",
			status:          http.StatusTooManyRequests,
			body:            "",
			expectedCode:    appErrors.ErrCodeTooManyRequests,
			expectedMessage: "Too Many Requests",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			appErr := appErrors.FromResponse(tc.status, []byte(tc.body))

			// Assert
			assert.Equal(t, tc.expectedCode, appErr.Code)
			assert.Equal(t, tc.expectedMessage, appErr.Message)
			assert.Equal(t, tc.status, appErr.StatusCode)
			assert.Equal(t, tc.expectedDetails, appErr.Details)
		})
	}
}

func TestIsStatus(t *testing.T) {
	wrapped := fmt.Errorf("loading cart: %w", appErrors.UnauthorizedError("Not authenticated"))

	assert.True(t, appErrors.IsStatus(wrapped, http.StatusUnauthorized))
	assert.False(t, appErrors.IsStatus(wrapped, http.StatusForbidden))
	assert.False(t, appErrors.IsStatus(fmt.Errorf("plain"), http.StatusUnauthorized))
}

func TestWithErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	appErr := appErrors.TransportError("Request failed").WithError(cause)

	require.ErrorIs(t, appErr, cause)
	found, ok := appErrors.IsAppError(appErr)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeTransport, found.Code)
}

func TestValidationFailed(t *testing.T) {
	appErr := appErrors.ValidationFailed([]string{"Field Email is required"})

	assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, []string{"Field Email is required"}, appErr.Details)
}
