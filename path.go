package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// parseHost extracts the name and optional port from a Host value of the
// form [http://]name[:port][/...].
func parseHost(value string) (name, port string, ok bool) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "http://")
	v, _, _ = strings.Cut(v, "/")
	if strings.HasPrefix(v, "[") {
		end := strings.IndexByte(v, ']')
		if end < 0 {
			return "", "", false
		}
		name = v[:end+1]
		port = strings.TrimPrefix(v[end+1:], ":")
	} else {
		name, port, _ = strings.Cut(v, ":")
	}
	if hasCTL(name) || hasCTL(port) {
		return "", "", false
	}
	// name becomes a directory segment
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, filepath.Separator) {
		return "", "", false
	}
	return name, port, true
}

// hasCTL reports whether s holds a control byte, which must never reach
// a response header.
func hasCTL(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7f {
			return true
		}
	}
	return false
}

// canonicalDir makes dir absolute and symlink free.
func canonicalDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// within reports whether p is root or a descendant of it.
func within(root, p string) bool {
	if p == root {
		return true
	}
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	return strings.HasPrefix(p, root)
}

// resolvePath confines resource to baseDir (extended by host when
// virtual hosting is on) by walking it lexically. It returns the
// confinement root and the candidate path. It never touches the target.
func resolvePath(baseDir, host, resource string, virtualHosts bool) (root, target string, err error) {
	root, err = canonicalDir(baseDir)
	if err != nil {
		return "", "", fmt.Errorf("%w: document root %q: %v", ErrPathTraversal, baseDir, err)
	}
	if virtualHosts {
		root = filepath.Join(root, host)
	}

	rest := strings.TrimPrefix(resource, "/")
	if strings.HasPrefix(rest, "/") || filepath.VolumeName(rest) != "" {
		return "", "", fmt.Errorf("%w: %q is absolute", ErrPathTraversal, resource)
	}

	target = root
	for _, seg := range strings.Split(rest, "/") {
		switch seg {
		case "", ".":
		case "..":
			parent := filepath.Dir(target)
			if parent == target || !within(root, parent) {
				return "", "", fmt.Errorf("%w: %q", ErrPathTraversal, resource)
			}
			target = parent
		default:
			target = filepath.Join(target, seg)
		}
	}
	if !within(root, target) {
		return "", "", fmt.Errorf("%w: %q", ErrPathTraversal, resource)
	}
	return root, target, nil
}

// confineLinks re-checks an existing target after following symlinks.
// A target that does not exist is left to the file read to report.
func confineLinks(root, target string) error {
	resolved, err := filepath.EvalSymlinks(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		realRoot = root
	}
	if !within(realRoot, resolved) {
		return fmt.Errorf("%w: %s links to %s", ErrPathTraversal, target, resolved)
	}
	return nil
}
