package main

import (
	"errors"
	"strings"
)

var (
	ErrMalformedRequest    = errors.New("malformed request")
	ErrMissingHost         = errors.New("missing or unusable Host header")
	ErrPathTraversal       = errors.New("path escapes document root")
	ErrUnknownResourceType = errors.New("unknown resource type")
)

// ConnectionError is a transport-level failure. It always ends the session.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Header lines are kept raw and in arrival order, duplicates included.
type HTTPHeader []string

// Get returns the value of the first line whose key matches name
// case-insensitively.
func (h HTTPHeader) Get(name string) (string, bool) {
	for _, line := range h {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(k), name) {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// WantsClose reports whether any line is "Connection: close".
func (h HTTPHeader) WantsClose() bool {
	for _, line := range h {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(k), "connection") &&
			strings.EqualFold(strings.TrimSpace(v), "close") {
			return true
		}
	}
	return false
}

type Request struct {
	Method   string
	Resource string
	Version  string
	Headers  HTTPHeader
}

// Supported reports whether this is the only request shape we answer.
func (r *Request) Supported() bool {
	return r.Method == "GET" && r.Version == "HTTP/1.1" && !hasCTL(r.Resource)
}

// Status is the outcome of a request. Only Redirect carries a payload.
type Status interface {
	Code() int
	Phrase() string
}

type statusCode int

const (
	StatusOK             statusCode = 200
	StatusBadRequest     statusCode = 400
	StatusForbidden      statusCode = 403
	StatusNotFound       statusCode = 404
	StatusServerError    statusCode = 500
	StatusNotImplemented statusCode = 501
)

var statusPhrases = map[statusCode]string{
	StatusOK:             "OK",
	StatusBadRequest:     "Bad Request",
	StatusForbidden:      "Forbidden",
	StatusNotFound:       "Not Found",
	StatusServerError:    "Internal Server Error",
	StatusNotImplemented: "Not Implemented",
}

func (s statusCode) Code() int      { return int(s) }
func (s statusCode) Phrase() string { return statusPhrases[s] }

// Redirect is a 301 to Target.
type Redirect struct {
	Target string
}

func (Redirect) Code() int      { return 301 }
func (Redirect) Phrase() string { return "Moved Permanently" }

// statusFor maps a dispatch error to its HTTP outcome.
func statusFor(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrMalformedRequest):
		return StatusNotImplemented
	case errors.Is(err, ErrMissingHost):
		return StatusBadRequest
	case errors.Is(err, ErrPathTraversal):
		return StatusForbidden
	case errors.Is(err, ErrUnknownResourceType):
		return StatusNotFound
	}
	return StatusServerError
}

type Response struct {
	Status      Status
	ContentType string
	Body        []byte
}
