package openweathermap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/namefreezers/weather-lookup/internal/weather/types"
)

// User-facing messages.
const (
	MsgEmptyCity          = "Please enter a city name."
	MsgBadRequest         = "Bad request. Please check the city name."
	MsgInvalidAPIKey      = "Invalid API key."
	MsgForbidden          = "Access forbidden. Please check your API key."
	MsgCityNotFound       = "City not found."
	MsgInternalError      = "Internal server error. Please try again later."
	MsgBadGateway         = "Bad gateway. Please try again later."
	MsgUnavailable        = "Service unavailable. Please try again later."
	MsgGatewayTimeout     = "Gateway timeout. Please try again later."
	MsgGeneric            = "An error occurred while fetching the weather data."
	MsgNetwork            = "Network error. Please check your internet connection."
	MsgTimeout            = "Request timed out. Please try again later."
	MsgTooManyRedirects   = "Too many redirects. Please check the URL."
	MsgUnexpectedResponse = "Unexpected response from the weather service."
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          MsgBadRequest,
	http.StatusUnauthorized:        MsgInvalidAPIKey,
	http.StatusForbidden:           MsgForbidden,
	http.StatusNotFound:            MsgCityNotFound,
	http.StatusInternalServerError: MsgInternalError,
	http.StatusBadGateway:          MsgBadGateway,
	http.StatusServiceUnavailable:  MsgUnavailable,
	http.StatusGatewayTimeout:      MsgGatewayTimeout,
}

var errTooManyRedirects = fmt.Errorf("stopped after %d redirects", maxRedirects)

// ErrTimeout marks lookups that failed because the request timed out.
var ErrTimeout = errors.New("openweathermap: request timed out")

// IsTimeout reports whether err is a lookup that timed out.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// ErrEmptyCity is returned for blank input before any request is made.
var ErrEmptyCity = &types.LookupError{Kind: types.KindClient, Message: MsgEmptyCity}

// StatusMessage returns the canned message for an upstream HTTP status.
func StatusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return MsgGeneric
}

func classifyStatus(status int) *types.LookupError {
	kind := types.KindUnclassified
	switch {
	case status >= 400 && status < 500:
		kind = types.KindClient
	case status >= 500 && status < 600:
		kind = types.KindServer
	}
	return &types.LookupError{
		Kind:       kind,
		StatusCode: status,
		Message:    StatusMessage(status),
		Err:        fmt.Errorf("openweathermap: unexpected status %d %s", status, http.StatusText(status)),
	}
}

func classifyTransport(err error) *types.LookupError {
	transport := func(msg string) *types.LookupError {
		return &types.LookupError{Kind: types.KindTransport, Message: msg, Err: err}
	}

	if errors.Is(err, errTooManyRedirects) {
		return transport(MsgTooManyRedirects)
	}
	timeout := func() *types.LookupError {
		return &types.LookupError{Kind: types.KindTransport, Message: MsgTimeout, Err: fmt.Errorf("%w: %w", ErrTimeout, err)}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeout()
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return timeout()
	}
	if errors.Is(err, context.Canceled) {
		return unclassified(err)
	}
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return transport(MsgNetwork)
	}
	return unclassified(err)
}

func unclassified(err error) *types.LookupError {
	return &types.LookupError{
		Kind:    types.KindUnclassified,
		Message: fmt.Sprintf("Request error: %v", err),
		Err:     err,
	}
}
