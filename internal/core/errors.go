package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is a malformed mobile, name, date or item.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthFailure is a wrong OTP.
	ErrAuthFailure = errors.New("authentication failed")

	// ErrNotFound is an absent identity or settings record.
	ErrNotFound = errors.New("not found")

	// ErrGatewayFailure is a failed remote call.
	ErrGatewayFailure = errors.New("remote service failed")

	// ErrParseFailure is free text the entry parser could not understand.
	ErrParseFailure = errors.New("could not parse input")

	// ErrRegistrationFailed is a rejected registration.
	ErrRegistrationFailed = errors.New("registration failed")

	// ErrNothingToSave is a parse result that only held zero amounts.
	ErrNothingToSave = errors.New("nothing to save")

	// ErrNoValidItems is a batch with no persistable entry.
	ErrNoValidItems = errors.New("no valid items")
)

// GatewayError wraps a failed remote call with the operation and status.
type GatewayError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("gateway: %s failed (status %d): %s", e.Op, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("gateway: %s failed (status %d): %v", e.Op, e.Status, e.Err)
	default:
		return fmt.Sprintf("gateway: %s failed: %v", e.Op, e.Err)
	}
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Is makes every GatewayError match ErrGatewayFailure as well as its cause.
func (e *GatewayError) Is(target error) bool {
	return target == ErrGatewayFailure || errors.Is(e.Err, target)
}

// NewGatewayError builds a GatewayError.
func NewGatewayError(op string, status int, message string, err error) *GatewayError {
	if err == nil {
		err = ErrGatewayFailure
	}
	return &GatewayError{Op: op, Status: status, Message: message, Err: err}
}

// UserMessage extracts the remote error text, falling back to err.Error().
func UserMessage(err error) string {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
