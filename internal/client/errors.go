package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/mcoot/fleetbattle-console/internal/model"
)

// Kind classifies a failed request by how far it got
type Kind int

const (
	// KindResponse means the backend answered with an error status
	KindResponse Kind = iota + 1
	// KindNetwork means the request was sent but no response arrived
	KindNetwork
	// KindRequest means the request could not be built or sent
	KindRequest
)

func (k Kind) String() string {
	switch k {
	case KindResponse:
		return "response"
	case KindNetwork:
		return "network"
	case KindRequest:
		return "request"
	default:
		return "unknown"
	}
}

// ConnectivityMessage is shown for every network failure
const ConnectivityMessage = "Unable to reach the server. Check your connection and try again."

// Error is returned by every failed call. It is never retried or swallowed;
// callers decide what the user sees.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	RequestID  string
	StatusCode int
	// Message is the text the backend put in its error payload, if any
	Message string
	Body    []byte
	// SessionExpired is set when the response cleared the stored session
	SessionExpired bool
	Err            error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindResponse:
		if e.Message != "" {
			return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
		}
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	case KindNetwork:
		return fmt.Sprintf("%s %s: no response: %v", e.Method, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a *Error from err
func AsError(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// StatusCode returns the response status carried by err, or zero
func StatusCode(err error) int {
	if ce, ok := AsError(err); ok && ce.Kind == KindResponse {
		return ce.StatusCode
	}
	return 0
}

// IsSessionExpired reports whether err cleared the session
func IsSessionExpired(err error) bool {
	ce, ok := AsError(err)
	return ok && ce.SessionExpired
}

// MessageOr converts err into the text shown to the operator: the input
// problem for validation errors, the backend's own message when it sent one,
// the connectivity message for network failures and fallback otherwise.
func MessageOr(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}

	ce, ok := AsError(err)
	if !ok {
		return fallback
	}
	switch ce.Kind {
	case KindResponse:
		if ce.Message != "" {
			return ce.Message
		}
	case KindNetwork:
		return ConnectivityMessage
	}
	return fallback
}

// messagePaths are tried in order against an error payload. Validation
// problem documents put per-field details under "errors", which is skipped.
var messagePaths = []string{"message", "error.message", "error", "title"}

func serverMessage(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range messagePaths {
		res := gjson.GetBytes(body, path)
		if res.Type == gjson.String && res.Str != "" {
			return res.Str
		}
	}
	return ""
}
