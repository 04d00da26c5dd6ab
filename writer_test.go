package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestWriteResponse(t *testing.T) {
	res := &Response{StatusOK, htmlContentType, []byte("<h1>Hi</h1>")}
	expect := "HTTP/1.1 200 OK\r\nContent-Type: text/html; charset=utf-8\r\nContent-Length: 11\r\n\r\n<h1>Hi</h1>"
	w := new(bytes.Buffer)
	if err := WriteResponse(w, res); err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, expect, w.String())
}

func TestBuildResponseEmptySuccess(t *testing.T) {
	res := &Response{StatusOK, "text/plain; charset=utf-8", nil}
	ExpectEqual(t, "HTTP/1.1 200 OK\r\nContent-Type: text/plain; charset=utf-8\r\nContent-Length: 0\r\n\r\n",
		string(BuildResponse(res)))
}

func TestBuildResponseRedirect(t *testing.T) {
	target := "http://example.com:9000/index.html"
	out := string(BuildResponse(&Response{Redirect{target}, htmlContentType, nil}))
	head, body, ok := strings.Cut(out, "\r\n\r\n")
	if !ok {
		t.Fatal("no blank line")
	}
	ExpectEqual(t, fmt.Sprintf(movedPage, "Moved Permanently", "Moved Permanently", target), body)
	expect := "HTTP/1.1 301 Moved Permanently\r\n" +
		"Location: " + target + "\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		fmt.Sprintf("Content-Length: %d", len(body))
	ExpectEqual(t, expect, head)
}

func TestBuildResponseRedirectEscapesTarget(t *testing.T) {
	out := string(BuildResponse(&Response{Redirect{`http://a:1/"><x>/index.html`}, htmlContentType, nil}))
	if strings.Contains(out, `href="http://a:1/"><x>`) {
		t.Error("target not escaped in body")
	}
	if !strings.Contains(out, "Location: http://a:1/\"><x>/index.html\r\n") {
		t.Error("Location must carry the raw target")
	}
}

func TestBuildResponseErrorPages(t *testing.T) {
	for _, s := range []statusCode{StatusBadRequest, StatusForbidden, StatusNotFound, StatusServerError, StatusNotImplemented} {
		out := string(BuildResponse(errorResponse(s)))
		body := fmt.Sprintf(errorPage, s.Phrase())
		expect := fmt.Sprintf("HTTP/1.1 %d %s\r\nContent-Type: text/html; charset=utf-8\r\nContent-Length: %d\r\n\r\n%s",
			s.Code(), s.Phrase(), len(body), body)
		ExpectEqual(t, expect, out)
	}
}

func TestBuildResponseKeepsExplicitBody(t *testing.T) {
	out := string(BuildResponse(&Response{StatusNotFound, "text/plain; charset=utf-8", []byte("gone")}))
	ExpectEqual(t, "HTTP/1.1 404 Not Found\r\nContent-Type: text/plain; charset=utf-8\r\nContent-Length: 4\r\n\r\ngone", out)
}

func TestStatusFor(t *testing.T) {
	check := func(err error, expect int) {
		t.Helper()
		if actual := statusFor(err).Code(); actual != expect {
			t.Errorf("%v: got %d, want %d", err, actual, expect)
		}
	}
	check(nil, 200)
	check(ErrMalformedRequest, 501)
	check(fmt.Errorf("wrapped: %w", ErrMissingHost), 400)
	check(fmt.Errorf("%w: /../x", ErrPathTraversal), 403)
	check(ErrUnknownResourceType, 404)
	check(fmt.Errorf("read x: boom"), 500)
}
