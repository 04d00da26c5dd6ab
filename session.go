package main

import (
	"errors"
	"io"
	"log"
	"net"
	"os"
	"time"
)

// Session serves every request of one connection, one after another.
type Session struct {
	conn   net.Conn
	reader *RequestReader
	cfg    *Config
	remote string
	served int
	req    *Request
	res    *Response
}

type stateFunc func(*Session) stateFunc

func NewSession(conn net.Conn, cfg *Config) *Session {
	remote := "(unknown)"
	if addr := conn.RemoteAddr(); addr != nil {
		remote = addr.String()
	}
	return &Session{
		conn:   conn,
		reader: NewRequestReader(conn),
		cfg:    cfg,
		remote: remote,
	}
}

// Serve takes the ownership of the connection and closes it on return.
func (s *Session) Serve() {
	log.Printf("I %s session started", s.remote)
	for state := waitForRequest; state != nil; {
		state = state(s)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// route resolves and reads the file for req, or reports why it cannot.
func (s *Session) route(req *Request) (*Response, error) {
	if !req.Supported() {
		return nil, ErrMalformedRequest
	}

	var hostport string
	value, _ := req.Headers.Get("host")
	name, port, ok := parseHost(value)
	if ok {
		if port == "" {
			port = s.cfg.listenPort()
		}
		hostport = name + ":" + port
	} else if s.cfg.VirtualHosts {
		return nil, ErrMissingHost
	} else {
		hostport = s.cfg.Addr
	}

	root, target, err := resolvePath(s.cfg.Root, name, req.Resource, s.cfg.VirtualHosts)
	if err != nil {
		return nil, err
	}
	return serveStatic(root, target, req.Resource, "http://"+hostport)
}

// state funcs

func waitForRequest(s *Session) stateFunc {
	if s.served >= s.cfg.MaxRequests {
		log.Printf("I %s reached %d requests", s.remote, s.served)
		return closeSession
	}
	if err := s.conn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout)); err != nil {
		log.Printf("E %s set deadline: %v", s.remote, err)
		return abortSession
	}
	req, err := s.reader.ReadRequestLine()
	if err != nil {
		if errors.Is(err, io.EOF) || isTimeout(err) {
			return closeSession
		}
		log.Printf("E %s %v", s.remote, err)
		return abortSession
	}
	s.req = req
	return readHeaders
}

func readHeaders(s *Session) stateFunc {
	if err := s.reader.ReadHeaders(s.req); err != nil {
		log.Printf("E %s %v", s.remote, err)
		return abortSession
	}
	return dispatch
}

func dispatch(s *Session) stateFunc {
	res, err := s.route(s.req)
	if err != nil {
		status := statusFor(err)
		if status == StatusServerError {
			log.Printf("E %s %v", s.remote, err)
		} else {
			log.Printf("W %s %s %q: %v", s.remote, s.req.Method, s.req.Resource, err)
		}
		res = errorResponse(status)
	}
	s.res = res
	return writeResponse
}

func writeResponse(s *Session) stateFunc {
	if err := WriteResponse(s.conn, s.res); err != nil {
		log.Printf("E %s write response: %v", s.remote, err)
		return abortSession
	}
	s.served++
	log.Printf("I %s %s %s %d", s.remote, s.req.Method, s.req.Resource, s.res.Status.Code())
	if s.req.Headers.WantsClose() {
		return closeSession
	}
	return waitForRequest
}

func closeSession(s *Session) stateFunc {
	s.shutdown()
	log.Printf("I %s session closed after %d requests", s.remote, s.served)
	return nil
}

func abortSession(s *Session) stateFunc {
	s.shutdown()
	log.Printf("W %s session aborted after %d requests", s.remote, s.served)
	return nil
}

type halfCloser interface {
	CloseRead() error
	CloseWrite() error
}

func (s *Session) shutdown() {
	if hc, ok := s.conn.(halfCloser); ok {
		if err := hc.CloseRead(); err != nil {
			log.Printf("W %s shutdown read: %v", s.remote, err)
		}
		if err := hc.CloseWrite(); err != nil {
			log.Printf("W %s shutdown write: %v", s.remote, err)
		}
	}
	if err := s.conn.Close(); err != nil {
		log.Printf("W %s close: %v", s.remote, err)
	}
}
