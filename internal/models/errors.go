package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the data-access core.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeDecodeError       = "DECODE_ERROR"
	CodeRemoteUnavailable = "REMOTE_UNAVAILABLE"
	CodeMissingImage      = "MISSING_IMAGE"
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInternal          = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewDecodeError reports a document that exists but could not be decoded.
func NewDecodeError(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeDecodeError,
		Message: fmt.Sprintf("%s document is malformed", resource),
		Err:     err,
	}
}

// NewRemoteError reports a transport or service failure of a backing store.
func NewRemoteError(op string, err error) *AppError {
	return &AppError{
		Code:    CodeRemoteUnavailable,
		Message: fmt.Sprintf("remote store failure during %s", op),
		Err:     err,
	}
}

// NewMissingImageError reports a match-record precondition violation: the
// participant has no profile images to reference.
func NewMissingImageError(userID string) *AppError {
	return &AppError{
		Code:    CodeMissingImage,
		Message: fmt.Sprintf("user %s has no profile images", userID),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
