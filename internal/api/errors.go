package api

import (
	"errors"
	"fmt"
)

// ErrRateLimited marks a live-quote call dropped by the client-side throttle.
// The call never reached the network and is not queued for later.
var ErrRateLimited = errors.New("live quote call dropped by throttle")

// ServerError is a non-2xx response with its body. The layer never retries;
// the caller decides what to surface.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Body)
}

// DecodeError is a response body that failed to decode into its contract.
// Responses are decoded into explicit typed records and fail closed rather
// than propagating missing fields silently.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
