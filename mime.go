package main

import (
	"path/filepath"
	"strings"
)

const (
	htmlContentType    = "text/html; charset=utf-8"
	defaultContentType = "application/octet-stream"
)

var mimeTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"svg":  "image/svg+xml",
	"pdf":  "application/pdf",
	"json": "application/json",
	"xml":  "application/xml",
	"css":  "text/css",
	"js":   "application/javascript",
	"txt":  "text/plain; charset=utf-8",
	"bin":  "application/octet-stream",
}

func contentTypeFor(ext string) string {
	if t, ok := mimeTypes[strings.ToLower(ext)]; ok {
		return t
	}
	return defaultContentType
}

// extension returns the text after the last dot of the final path
// element. Dot files such as ".profile" have none.
func extension(p string) (string, bool) {
	base := filepath.Base(p)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return "", false
	}
	return base[i+1:], true
}
