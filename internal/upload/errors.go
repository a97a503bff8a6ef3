package upload

import (
	"errors"
	"fmt"
	"strings"
)

// Transport errors
var (
	ErrRequestFailed     = errors.New("upload request failed")
	ErrMalformedResponse = errors.New("malformed add response")
)

// ErrRejected is matched by every ValidationErrors value.
var ErrRejected = errors.New("upload rejected")

// Validation error codes
const (
	CodeTooManyFiles     = "too-many-files"
	CodeFileTooLarge     = "file-too-large"
	CodeInvalidExtension = "file-invalid-type"
	CodeNoFile           = "no-file"
	CodeEmptyText        = "empty-text"
)

// ValidationError is a single human-readable reason for rejecting a candidate.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors holds every error found on the first rejected candidate.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Is lets errors.Is(err, ErrRejected) match any validation failure.
func (errs ValidationErrors) Is(target error) bool {
	return target == ErrRejected
}

// Messages returns the messages in order.
func (errs ValidationErrors) Messages() []string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return msgs
}

// ErrorKind distinguishes the two transport failure classes.
type ErrorKind string

const (
	KindRequestFailed     ErrorKind = "RequestFailed"
	KindMalformedResponse ErrorKind = "MalformedResponse"
)

// TransportError wraps a failed add call with its context.
type TransportError struct {
	Kind       ErrorKind
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.Endpoint != "" {
		b.WriteString(" from " + e.Endpoint)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *TransportError) Is(target error) bool {
	switch e.Kind {
	case KindRequestFailed:
		return target == ErrRequestFailed
	case KindMalformedResponse:
		return target == ErrMalformedResponse
	}
	return false
}

func requestFailed(endpoint string, status int, err error) *TransportError {
	return &TransportError{Kind: KindRequestFailed, Endpoint: endpoint, StatusCode: status, Err: err}
}

func malformedResponse(endpoint string, err error) *TransportError {
	return &TransportError{Kind: KindMalformedResponse, Endpoint: endpoint, Err: err}
}
