package api

import (
	"fmt"
	"net/http"
)

// TransportError means a request could not be sent or came back with a non-200 status
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError means the response body did not have the expected shape.
// It usually indicates a change of the remote API contract.
type ProtocolError struct {
	Op    string
	Field string // missing field, if any
	Err   error
}

func (e *ProtocolError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: response is missing %q", e.Op, e.Field)
	default:
		return fmt.Sprintf("%s: malformed response", e.Op)
	}
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// AuthenticationError is returned by Login when the platform rejects the credentials,
// either at the HTTP level (Status) or with an application code (Msg).
type AuthenticationError struct {
	Status int
	Msg    string
}

func (e *AuthenticationError) Error() string {
	if e.Status != 0 && e.Status != http.StatusOK {
		return fmt.Sprintf("login failed with status %d", e.Status)
	}
	return fmt.Sprintf("login failed: %s", e.Msg)
}

func missing(op, field string) error {
	return &ProtocolError{Op: op, Field: field}
}
