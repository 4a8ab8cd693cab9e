package wargamer

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmgilman/go/errors"
)

// Sentinel errors. Errors returned by this package wrap them, so they can be
// matched with errors.Is.
var (
	// ErrInvalidIdentifierType is returned when an entity identifier is
	// neither an integer nor a string.
	ErrInvalidIdentifierType = errors.New(errors.CodeInvalidInput, "expected an integer or string identifier")

	// ErrUnknownRealmOrProduct is returned when no base URI exists for a
	// realm/product pair.
	ErrUnknownRealmOrProduct = errors.New(errors.CodeInvalidConfig, "unknown realm or product")

	// ErrInvalidTranslationType is returned when a translation table does not
	// exist or is not an object.
	ErrInvalidTranslationType = errors.New(errors.CodeInvalidInput, "invalid translation type")

	// ErrMissingAccessToken is returned by token operations on a client
	// without an access token.
	ErrMissingAccessToken = errors.New(errors.CodeInvalidInput, "client access token is not set")
)

// APIError is an error reported by the remote API inside a response body.
type APIError struct {
	// Method is the API method that was requested, e.g. "account/list".
	Method string
	// Realm is the realm the request was sent to.
	Realm Realm
	// Product is the API the request was sent to.
	Product Product
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Code is the remote error code.
	Code int
	// Message is the remote error message, e.g. "INVALID_SEARCH".
	Message string
	// Field is the request field the remote flagged.
	Field string
	// Value is the value of the flagged field.
	Value any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s. Error field: %s => %v.", e.Code, e.Message, e.Field, e.Value)
}

// TransportError is a failure to obtain a usable response: a network
// failure, a non-2xx status without a structured error, or a malformed body.
type TransportError struct {
	Method     string
	Realm      Realm
	Product    Product
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("request to %s/%s/%s failed", e.Product, e.Realm, e.Method)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s with status %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// wrapAPIError wraps a remote error with a code derived from its message.
func wrapAPIError(apiErr *APIError) error {
	err := errors.Wrap(apiErr, remoteErrorCode(apiErr.Message), "remote API returned an error")
	return errors.WithContextMap(err, map[string]interface{}{
		"method":  apiErr.Method,
		"realm":   string(apiErr.Realm),
		"product": string(apiErr.Product),
		"field":   apiErr.Field,
	})
}

// wrapTransportError wraps a transport failure with a code derived from the
// HTTP status or the underlying network error.
func wrapTransportError(ctx context.Context, tErr *TransportError) error {
	var code errors.ErrorCode
	switch {
	case tErr.StatusCode != 0:
		code = httpStatusCode(tErr.StatusCode)
	case ctx.Err() != nil:
		code = contextCode(ctx.Err())
	default:
		code = errors.CodeNetwork
	}

	err := errors.Wrap(tErr, code, "request failed")
	return errors.WithContextMap(err, map[string]interface{}{
		"method":      tErr.Method,
		"realm":       string(tErr.Realm),
		"product":     string(tErr.Product),
		"status_code": tErr.StatusCode,
	})
}

// httpStatusCode maps an HTTP status to an error code.
func httpStatusCode(statusCode int) errors.ErrorCode {
	switch statusCode {
	case http.StatusNotFound:
		return errors.CodeNotFound
	case http.StatusUnauthorized:
		return errors.CodeUnauthorized
	case http.StatusForbidden:
		return errors.CodeForbidden
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.CodeInvalidInput
	case http.StatusTooManyRequests:
		return errors.CodeRateLimit
	case http.StatusServiceUnavailable:
		return errors.CodeUnavailable
	case http.StatusGatewayTimeout:
		return errors.CodeTimeout
	default:
		if statusCode >= 500 {
			return errors.CodeNetwork
		}
		return errors.CodeInternal
	}
}

// remoteErrorCode maps a remote error message to an error code.
func remoteErrorCode(message string) errors.ErrorCode {
	msg := strings.ToUpper(message)
	switch {
	case msg == "INVALID_ACCESS_TOKEN":
		return errors.CodeUnauthorized
	case msg == "APPLICATION_IS_BLOCKED", msg == "INVALID_IP_ADDRESS":
		return errors.CodeForbidden
	case strings.HasSuffix(msg, "_LIST_LIMIT_EXCEEDED"):
		return errors.CodeInvalidInput
	case strings.HasSuffix(msg, "_LIMIT_EXCEEDED"):
		return errors.CodeRateLimit
	case strings.HasSuffix(msg, "_NOT_FOUND"):
		return errors.CodeNotFound
	case msg == "SOURCE_NOT_AVAILABLE", msg == "METHOD_DISABLED":
		return errors.CodeUnavailable
	case strings.HasPrefix(msg, "INVALID_"), strings.HasSuffix(msg, "_NOT_SPECIFIED"):
		return errors.CodeInvalidInput
	default:
		return errors.CodeInternal
	}
}

// sentinel returns an error matching base via errors.Is, carrying a more
// specific message and context.
func sentinel(base errors.PlatformError, message string, ctx map[string]interface{}) error {
	err := errors.Wrap(base, base.Code(), message)
	if len(ctx) == 0 {
		return err
	}
	return errors.WithContextMap(err, ctx)
}

// contextError wraps the error of a done context.
func contextError(ctx context.Context) error {
	err := ctx.Err()
	if contextCode(err) == errors.CodeTimeout {
		return errors.Wrap(err, errors.CodeTimeout, "operation timed out")
	}
	return errors.Wrap(err, errors.CodeInternal, "operation canceled")
}

// contextCode classifies the error of a done context. A deadline is a
// timeout and a cancellation is internal.
func contextCode(err error) errors.ErrorCode {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.CodeTimeout
	}
	return errors.CodeInternal
}
