package rest

import "fmt"

// TransportError is a failed HTTP exchange: a non-2xx response, or a network
// failure when StatusCode is 0. Transport errors are retried.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("GTE API %s %s failed: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("GTE API %s %s failed with %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError means a 2xx response body was not valid JSON for the target type.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse JSON from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
