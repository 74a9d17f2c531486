package response

import (
	"bytes"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("Success - Text output with details", func(t *testing.T) {
		var buf bytes.Buffer
		err := appErrors.ValidationFailed([]string{"Field Email is required"})

		Error(&buf, err, false)

		assert.Equal(t, "error: Validation failed\n  - Field Email is required\n", buf.String())
	})

	t.Run("Success - JSON output", func(t *testing.T) {
		var buf bytes.Buffer
		err := appErrors.NotFoundError("Товар не найден").WithDetail("id 9")

		Error(&buf, err, true)

		assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"Товар не найден","status":404,"details":["id 9"]}}`, buf.String())
	})

	t.Run("Success - Plain error", func(t *testing.T) {
		resp := FromError(errors.New("boom"))

		assert.Equal(t, appErrors.ErrCodeInternal, resp.Code)
		assert.Equal(t, "boom", resp.Message)
	})
}

func TestWriteJson(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteJson(&buf, map[string]int{"count": 3}))
	assert.JSONEq(t, `{"count":3}`, buf.String())
}
