package main

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const maxLineLength = 8 << 10

var errLineTooLong = errors.New("line too long")

// RequestReader reads HTTP/1.1 request heads off one connection.
type RequestReader struct {
	r *bufio.Reader
}

func NewRequestReader(r io.Reader) *RequestReader {
	var br *bufio.Reader
	if casted, ok := r.(*bufio.Reader); ok {
		br = casted
	} else {
		br = bufio.NewReader(r)
	}
	return &RequestReader{br}
}

// similar to readLineSlice() in net/textproto/reader.go
func (r *RequestReader) readLine() (string, error) {
	var line []byte
	for {
		l, more, err := r.r.ReadLine()
		if err != nil {
			return "", err
		}
		if line == nil && !more {
			return string(l), nil
		}
		line = append(line, l...)
		if len(line) > maxLineLength {
			return "", errLineTooLong
		}
		if !more {
			break
		}
	}
	return string(line), nil
}

// ReadRequestLine returns io.EOF untouched when the peer closed before
// sending anything; every other failure is a *ConnectionError.
func (r *RequestReader) ReadRequestLine() (*Request, error) {
	rl, err := r.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, &ConnectionError{"read request line", err}
	}
	req := &Request{}
	fields := strings.Split(strings.TrimSpace(rl), " ")
	if len(fields) == 3 {
		req.Method = fields[0]
		req.Resource = fields[1]
		req.Version = fields[2]
	}
	return req, nil
}

// ReadHeaders reads lines until a blank line or end of stream.
func (r *RequestReader) ReadHeaders(req *Request) error {
	for {
		line, err := r.readLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &ConnectionError{"read headers", err}
		}
		if len(line) == 0 {
			return nil
		}
		req.Headers = append(req.Headers, line)
	}
}
