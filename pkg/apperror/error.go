package apperror

import "net/http"

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

// Conflict signals a state clash, e.g. a duplicate application.
func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

// UnsupportedMedia signals a rejected upload content type.
func UnsupportedMedia(message string) *AppError {
	return New(http.StatusUnsupportedMediaType, message, nil)
}

// PayloadTooLarge signals an upload over the size ceiling.
func PayloadTooLarge(message string) *AppError {
	return New(http.StatusRequestEntityTooLarge, message, nil)
}

// Unavailable signals a transient upstream failure. The caller may retry;
// the core never does.
func Unavailable(message string, err error) *AppError {
	return New(http.StatusServiceUnavailable, message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}
