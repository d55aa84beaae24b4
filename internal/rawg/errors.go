package rawg

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotConfigured is returned when a request is attempted without an API key.
var ErrNotConfigured = errors.New("rawg api key not configured")

// ErrorKind classifies request failures.
type ErrorKind int

const (
	// KindNetwork means the request could not complete.
	KindNetwork ErrorKind = iota
	// KindResponse means the service answered with a non-2xx status.
	KindResponse
	// KindParse means the response body could not be decoded.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindResponse:
		return "response"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error describes a failed API call.
type Error struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindResponse:
		return fmt.Sprintf("api %s returned status %d", e.Op, e.StatusCode)
	default:
		if e.Err == nil {
			return fmt.Sprintf("api %s: %s failure", e.Op, e.Kind)
		}
		return fmt.Sprintf("api %s: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Describe returns a short human-readable cause for err, suitable for a
// status line.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNotConfigured) {
		return "API key not configured"
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	switch apiErr.Kind {
	case KindNetwork:
		return "service unreachable"
	case KindResponse:
		if text := http.StatusText(apiErr.StatusCode); text != "" {
			return fmt.Sprintf("HTTP %d %s", apiErr.StatusCode, text)
		}
		return fmt.Sprintf("HTTP %d", apiErr.StatusCode)
	case KindParse:
		return "malformed response"
	default:
		return apiErr.Error()
	}
}
