package client

import (
	"errors"
	"fmt"
)

// ErrorCode represents the type of error that occurred.
type ErrorCode int

const (
	// ErrUnknown is an unknown error.
	ErrUnknown ErrorCode = iota
	// ErrInvalidURL is returned when an input or a server response looks like
	// a paste.rs URL but cannot be reduced to an identifier.
	ErrInvalidURL
	// ErrInvalidArguments is returned when an input matches none of the
	// accepted reference shapes.
	ErrInvalidArguments
	// ErrTransport is returned when the request never got a response.
	ErrTransport
	// ErrRemote is returned when the server answered with an unexpected status.
	ErrRemote
)

func (c ErrorCode) String() string {
	switch c {
	case ErrInvalidURL:
		return "invalid url"
	case ErrInvalidArguments:
		return "invalid arguments"
	case ErrTransport:
		return "transport error"
	case ErrRemote:
		return "remote error"
	default:
		return "unknown error"
	}
}

// Error represents an error from the paste client.
type Error struct {
	Code    ErrorCode
	Message string

	// StatusCode and Body are set for ErrRemote.
	StatusCode int
	Body       string

	// Err is the underlying cause for ErrTransport.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("pasters: %s: %v", e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("pasters: %s", e.Message)
	default:
		return fmt.Sprintf("pasters: %s", e.Code)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidURL(msg string) *Error {
	return &Error{Code: ErrInvalidURL, Message: msg}
}

func transportError(msg string, err error) *Error {
	return &Error{Code: ErrTransport, Message: msg, Err: err}
}

func remoteError(status int, body string) *Error {
	return &Error{
		Code:       ErrRemote,
		Message:    fmt.Sprintf("unexpected status %d: %s", status, body),
		StatusCode: status,
		Body:       body,
	}
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsInvalidURL returns true if the error indicates an unusable paste URL.
func IsInvalidURL(err error) bool {
	return hasCode(err, ErrInvalidURL)
}

// IsInvalidArguments returns true if the error indicates an unrecognized reference.
func IsInvalidArguments(err error) bool {
	return hasCode(err, ErrInvalidArguments)
}

// IsTransport returns true if the error indicates a network failure.
func IsTransport(err error) bool {
	return hasCode(err, ErrTransport)
}

// IsRemote returns true if the server replied with an error status.
func IsRemote(err error) bool {
	return hasCode(err, ErrRemote)
}
