package main

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// serveStatic turns a resolved path into a response. baseURL is the
// scheme, host and port used for redirect targets.
func serveStatic(root, target, resource, baseURL string) (*Response, error) {
	if err := confineLinks(root, target); err != nil {
		return nil, err
	}

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		loc := resource
		if !strings.HasSuffix(loc, "/") {
			loc += "/"
		}
		return &Response{
			Status:      Redirect{baseURL + loc + "index.html"},
			ContentType: htmlContentType,
		}, nil
	}

	ext, ok := extension(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResourceType, target)
	}
	// TODO: answer 404 instead of 500 when a file with a known extension is missing
	b, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	if ext == "html" {
		if !utf8.Valid(b) {
			return nil, fmt.Errorf("read %s: not valid UTF-8", target)
		}
		return &Response{StatusOK, htmlContentType, b}, nil
	}
	return &Response{StatusOK, contentTypeFor(ext), b}, nil
}
