package chesscom

import (
	"errors"
	"fmt"
)

// Reason is the failure taxonomy surfaced to callers and, ultimately, to the
// download report. Raw transport errors never leave this package untagged.
type Reason string

const (
	ReasonNotFound  Reason = "not_found"
	ReasonForbidden Reason = "forbidden"
	ReasonTimeout   Reason = "timeout"
	ReasonTransport Reason = "transport_error"
)

// HTTPReason maps a non-2xx status to its taxonomy reason.
func HTTPReason(status int) Reason {
	switch status {
	case 404:
		return ReasonNotFound
	case 403:
		return ReasonForbidden
	default:
		return Reason(fmt.Sprintf("http_%d", status))
	}
}

// APIError is a typed archive-API failure. All client operations return
// either nil or an *APIError (possibly wrapping the transport cause).
type APIError struct {
	Reason Reason
	Status int
	URL    string
	Err    error
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("archive api: %s (status %d) %s", e.Reason, e.Status, e.URL)
	}
	if e.Err != nil {
		return fmt.Sprintf("archive api: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("archive api: %s %s", e.Reason, e.URL)
}

func (e *APIError) Unwrap() error { return e.Err }

// ReasonOf extracts the taxonomy reason from any error; unknown errors
// collapse to transport_error, nil to the empty reason.
func ReasonOf(err error) Reason {
	if err == nil {
		return ""
	}
	var api *APIError
	if errors.As(err, &api) {
		return api.Reason
	}
	return ReasonTransport
}
