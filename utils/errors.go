package utils

import "net/http"

// CustomError is an error that carries the HTTP status code it should surface with
type CustomError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *CustomError) Error() string {
	return e.Message
}

// NewCustomError helper to build a CustomError
func NewCustomError(statusCode int, message string) *CustomError {
	return &CustomError{StatusCode: statusCode, Message: message}
}

// NewValidationError marks malformed or missing request input
func NewValidationError(message string) *CustomError {
	return NewCustomError(http.StatusBadRequest, message)
}

// NewNotFoundError marks an empty lookup result
func NewNotFoundError(message string) *CustomError {
	return NewCustomError(http.StatusNotFound, message)
}

// NewGatewayError marks an upstream Places API failure
func NewGatewayError(message string) *CustomError {
	return NewCustomError(http.StatusBadGateway, message)
}
