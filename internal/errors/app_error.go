package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	Details    []string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeDuplicateEntry  = "DUPLICATE_ENTRY"
	ErrCodeThirdPartyError = "THIRD_PARTY_ERROR"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
	ErrCodeTransport       = "TRANSPORT_ERROR"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, http.StatusInternalServerError)
}

// TransportError wraps failures that happened before a response was received.
func TransportError(message string) *AppError {
	return NewAppError(ErrCodeTransport, message, 0)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// IsStatus reports whether err carries the given HTTP status code.
func IsStatus(err error, statusCode int) bool {
	appErr, ok := IsAppError(err)

	return ok && appErr.StatusCode == statusCode
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}

func ValidationFailed(details []string) *AppError {
	appErr := ValidationError("Validation failed")
	appErr.Details = details

	return appErr
}

// codeForStatus maps a backend status code onto the error taxonomy.
func codeForStatus(statusCode int) string {
	switch {
	case statusCode == http.StatusBadRequest:
		return ErrCodeBadRequest
	case statusCode == http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case statusCode == http.StatusForbidden:
		return ErrCodeForbidden
	case statusCode == http.StatusNotFound:
		return ErrCodeNotFound
	case statusCode == http.StatusConflict:
		return ErrCodeDuplicateEntry
	case statusCode == http.StatusUnprocessableEntity:
		return ErrCodeValidation
	case statusCode == http.StatusTooManyRequests:
		return ErrCodeTooManyRequests
	case statusCode >= 500:
		return ErrCodeThirdPartyError
	default:
		return ErrCodeBadRequest
	}
}

type detailBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// FromResponse normalizes a non-2xx backend response. The message is the
// body's "detail" field when present, else the raw body, else the status text.
func FromResponse(statusCode int, body []byte) *AppError {
	message, details := detailMessage(body)

	if message == "" {
		message = strings.TrimSpace(string(body))
	}

	if message == "" {
		message = http.StatusText(statusCode)
	}

	appErr := NewAppError(codeForStatus(statusCode), message, statusCode)
	appErr.Details = details

	return appErr
}

func detailMessage(body []byte) (string, []string) {
	var parsed detailBody
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Detail) == 0 {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(parsed.Detail, &text); err == nil {
		return text, nil
	}

	// FastAPI request validation: a list of {loc, msg, type}
	var items []validationItem
	if err := json.Unmarshal(parsed.Detail, &items); err == nil && len(items) > 0 {
		details := make([]string, 0, len(items))

		for _, item := range items {
			if len(item.Loc) > 0 {
				details = append(details, fmt.Sprintf("%v: %s", item.Loc[len(item.Loc)-1], item.Msg))
				continue
			}
			details = append(details, item.Msg)
		}

		return strings.Join(details, "; "), details
	}

	return string(parsed.Detail), nil
}
