package types

import (
	"errors"
	"fmt"
)

// Weather is the result of one successful lookup.
type Weather struct {
	City          string  `json:"city"`
	TemperatureF  float64 `json:"temperature_f"`
	Description   string  `json:"description"`
	Emoji         string  `json:"emoji"`
	ConditionCode int     `json:"condition_code"`
}

// ErrorKind classifies why a lookup failed.
type ErrorKind string

const (
	KindClient       ErrorKind = "client"
	KindServer       ErrorKind = "server"
	KindTransport    ErrorKind = "transport"
	KindUnclassified ErrorKind = "unclassified"
)

// LookupError is the user-facing failure of a lookup. Message is meant to be
// shown as-is; Err keeps the underlying cause for logs.
type LookupError struct {
	Kind       ErrorKind
	StatusCode int // upstream HTTP status, 0 when none was received
	Message    string
	Err        error
}

func (e *LookupError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (%v)", e.Message, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// AsLookupError returns err as a *LookupError, wrapping foreign errors as unclassified.
func AsLookupError(err error) *LookupError {
	if err == nil {
		return nil
	}
	var le *LookupError
	if errors.As(err, &le) {
		return le
	}
	return &LookupError{
		Kind:    KindUnclassified,
		Message: fmt.Sprintf("Request error: %v", err),
		Err:     err,
	}
}
