package api

import (
	"errors"
	"fmt"
)

// bodyPreviewLen is how many characters of a non-JSON body are echoed back.
const bodyPreviewLen = 200

// TransportError means the request could not be completed.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseFormatError means the API answered with a body that is not JSON.
type ResponseFormatError struct {
	StatusCode int
	Body       string
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("bad response (status %d): %s", e.StatusCode, e.Body)
}

// APIError means the API answered with a non-success status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// IsTransportError checks if an error is a transport error.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsResponseFormatError checks if an error is a response format error.
func IsResponseFormatError(err error) bool {
	var fe *ResponseFormatError
	return errors.As(err, &fe)
}

// IsAPIError checks if an error is an API status error.
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// truncate returns at most n characters of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
