package response

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Status  int      `json:"status,omitempty"`
	Details []string `json:"details,omitempty"`
}

// WriteJson pretty-prints data for machine consumption.
func WriteJson(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(data)
}

// FromError flattens any error into the printable shape.
func FromError(err error) ErrorResponse {
	if appErr, ok := errors.IsAppError(err); ok {
		resp := ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
			Status:  appErr.StatusCode,
			Details: appErr.Details,
		}

		if appErr.Detail != "" {
			resp.Details = append(resp.Details, appErr.Detail)
		}

		return resp
	}

	return ErrorResponse{
		Code:    errors.ErrCodeInternal,
		Message: err.Error(),
	}
}

// Error writes err as JSON when asJSON is set, otherwise as text lines.
func Error(w io.Writer, err error, asJSON bool) {
	resp := FromError(err)

	if asJSON {
		_ = WriteJson(w, map[string]ErrorResponse{"error": resp})
		return
	}

	fmt.Fprintf(w, "error: %s\n", resp.Message)
	for _, detail := range resp.Details {
		fmt.Fprintf(w, "  - %s\n", detail)
	}
}

// ValidationMessages renders one human readable line per failed field.
func ValidationMessages(errs validator.ValidationErrors) []string {

	errMsgs := make([]string, 0, len(errs))

	for _, err := range errs {

		var message string

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field %s is required", err.Field())
		case "email":
			message = fmt.Sprintf("Field %s must be a valid email address", err.Field())
		case "min":
			message = fmt.Sprintf("Field %s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field %s must be at most %s characters", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("Field %s must be greater than %s", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("Field %s must be at least %s", err.Field(), err.Param())
		case "lte":
			message = fmt.Sprintf("Field %s must be at most %s", err.Field(), err.Param())
		case "eqfield":
			message = fmt.Sprintf("Field %s must match %s", err.Field(), err.Param())
		case "nefield":
			message = fmt.Sprintf("Field %s must differ from %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("Field %s must be one of: %s", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field %s is invalid: %s=%s", err.Field(), err.Tag(), err.Param())
		}

		errMsgs = append(errMsgs, message)
	}

	return errMsgs
}
