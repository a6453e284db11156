package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoDraft   = errors.New("no pending order draft")
	ErrNoSession = errors.New("no session")
)

// RequestError means the backend responded with a status outside the 2xx
// range. Message is the human-readable detail extracted from the payload.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// NetworkError means no response was received from the backend at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "no response received from server"
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ClientError means the request could not be constructed or sent.
type ClientError struct {
	Err error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("error setting up request: %v", e.Err)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}
