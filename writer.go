package main

import (
	"bytes"
	"fmt"
	"html"
	"io"
)

const movedPage = "<!DOCTYPE html>\n<html lang=\"en\">\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n<h1>%s</h1>\n<p>The document has moved <a href=\"%s\">here</a>.</p>\n</body>\n</html>"

const errorPage = "<!DOCTYPE html>\n<html lang=\"en\">\n<head><meta charset=\"utf-8\"><title>%[1]s</title></head>\n<body>\n<h1>%[1]s</h1>\n</body>\n</html>"

func errorResponse(s Status) *Response {
	return &Response{Status: s, ContentType: htmlContentType}
}

// finalBody fills in the page for a redirect or error sent without a body.
func finalBody(res *Response) []byte {
	if len(res.Body) > 0 {
		return res.Body
	}
	phrase := res.Status.Phrase()
	if r, ok := res.Status.(Redirect); ok {
		return []byte(fmt.Sprintf(movedPage, phrase, phrase, html.EscapeString(r.Target)))
	}
	if res.Status.Code() >= 400 {
		return []byte(fmt.Sprintf(errorPage, phrase))
	}
	return res.Body
}

// BuildResponse renders the status line, headers and body as one buffer.
func BuildResponse(res *Response) []byte {
	body := finalBody(res)
	var b bytes.Buffer
	fmt.Fprintf(&b, "HTTP/1.1 %d %s\r\n", res.Status.Code(), res.Status.Phrase())
	if r, ok := res.Status.(Redirect); ok {
		fmt.Fprintf(&b, "Location: %s\r\n", r.Target)
	}
	fmt.Fprintf(&b, "Content-Type: %s\r\n", res.ContentType)
	fmt.Fprintf(&b, "Content-Length: %d\r\n", len(body))
	b.WriteString("\r\n")
	b.Write(body)
	return b.Bytes()
}

func WriteResponse(w io.Writer, res *Response) error {
	_, err := w.Write(BuildResponse(res))
	return err
}
