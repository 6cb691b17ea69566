package rocketleague

import (
	"errors"
	"fmt"
	"net/http"
)

// Validation errors. All of them are returned before any request is sent.
var (
	// ErrInvalidParameter indicates a platform, stat type or playlist outside its set
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrEmptyInput indicates a missing or empty player identifier
	ErrEmptyInput = errors.New("at least one player ID is required")
	// ErrTooManyInputs indicates more player identifiers than a single request accepts
	ErrTooManyInputs = errors.New("too many player IDs")
	// ErrSingleValueRequired indicates an endpoint that only accepts one player identifier
	ErrSingleValueRequired = errors.New("only one player ID is allowed")
)

// ErrInvalidConfig indicates invalid client configuration
var ErrInvalidConfig = errors.New("invalid rocket league client configuration")

// ParameterError describes which parameter failed validation and why
type ParameterError struct {
	Param Param
	Value string
	Err   error
}

func (e *ParameterError) Error() string {
	if errors.Is(e.Err, ErrInvalidParameter) {
		return fmt.Sprintf("invalid %s %q: must be one of %s", e.Param, e.Value, allowedValues(e.Param))
	}
	return fmt.Sprintf("%s: %v", e.Param, e.Err)
}

func (e *ParameterError) Unwrap() error {
	return e.Err
}

func invalidParam(param Param, value string) error {
	return &ParameterError{Param: param, Value: value, Err: ErrInvalidParameter}
}

func playerIDError(err error) error {
	return &ParameterError{Param: ParamPlayerID, Err: err}
}

// APIError represents a non-2xx response from the stats API
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("rocket league API error: status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
