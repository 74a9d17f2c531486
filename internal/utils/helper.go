package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	appErrors "github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// DecodeJSONBody decodes a response body into dest. An empty body is an error.
func DecodeJSONBody(body io.Reader, dest any) error {

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if len(data) == 0 {
		return errors.New("response body cannot be empty")
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

// ValidateStruct runs the validator and turns field failures into a
// VALIDATION_ERROR with one message per field.
func ValidateStruct(validate *validator.Validate, data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		slog.Debug("Input validation failed", slog.String("error", validationErrs.Error()))

		return appErrors.ValidationFailed(response.ValidationMessages(validationErrs)).WithError(err)
	}

	slog.Error("Unexpected validation error", slog.String("error", err.Error()))

	return appErrors.InternalError("unexpected validation error").WithError(err)
}
