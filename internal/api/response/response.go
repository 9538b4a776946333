// Package response defines the JSON envelope shared by every endpoint.
package response

import (
	"net/http"

	apperrors "github.com/WeAreCode045/wphub-pro-sub001/internal/errors"
	"github.com/labstack/echo/v4"
)

// APIResponse is the success envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is the failure envelope. Code carries the machine-readable
// error taxonomy value.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// PaginatedResponse wraps list data with pagination metadata.
type PaginatedResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    Meta        `json:"meta"`
}

// Meta contains pagination metadata
type Meta struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// Success returns 200 with data.
func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// SuccessWithMessage returns 200 with data and a human-readable message.
func SuccessWithMessage(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Message: message})
}

// Created returns 201 with the created resource.
func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// NoContent returns 204.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Paginated returns 200 with list data and meta.
func Paginated(c echo.Context, data interface{}, total int64, limit, offset int) error {
	return c.JSON(http.StatusOK, PaginatedResponse{
		Success: true,
		Data:    data,
		Meta:    Meta{Total: total, Limit: limit, Offset: offset},
	})
}

// Error maps an application error onto the taxonomy's HTTP status.
func Error(c echo.Context, err error) error {
	code := apperrors.GetErrorCode(err)
	return fail(c, statusFor(code), code, err.Error())
}

// BadRequest returns 400 with a VALIDATION_ERROR code.
func BadRequest(c echo.Context, message string) error {
	return fail(c, http.StatusBadRequest, apperrors.CodeValidation, message)
}

// NotFound returns 404 with a NOT_FOUND code.
func NotFound(c echo.Context, message string) error {
	return fail(c, http.StatusNotFound, apperrors.CodeNotFound, message)
}

// Conflict returns 409 with a DUPLICATE_ENTRY code.
func Conflict(c echo.Context, message string) error {
	return fail(c, http.StatusConflict, apperrors.CodeDuplicateEntry, message)
}

// InternalError returns 500 with an INTERNAL_ERROR code.
func InternalError(c echo.Context, message string) error {
	return fail(c, http.StatusInternalServerError, apperrors.CodeInternalError, message)
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, ErrorResponse{Success: false, Error: message, Code: code})
}

var statusByCode = map[string]int{
	apperrors.CodeNotFound:       http.StatusNotFound,
	apperrors.CodeConfiguration:  http.StatusServiceUnavailable,
	apperrors.CodeInvalidReply:   http.StatusUnprocessableEntity,
	apperrors.CodeValidation:     http.StatusBadRequest,
	apperrors.CodeDuplicateEntry: http.StatusConflict,
	apperrors.CodeUnauthorized:   http.StatusUnauthorized,
	apperrors.CodeForbidden:      http.StatusForbidden,
}

func statusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
