// Package pathutil implements the path arithmetic shared by resource
// implementations: relative resolution, cleaning, and translating file URLs
// into OS paths.
package pathutil

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Clean normalizes a solidus delimited path: collapses "." and ".." segments
// and redundant separators, and reduces the empty-ish forms ("", ".", "/") to
// the empty string.
func Clean(p string) string {
	c := path.Clean(p)
	if c == "." || c == "/" {
		return ""
	}
	return c
}

// ApplyRelative resolves rel against the directory containing base.  The last
// segment of base is replaced by rel, and the result is cleaned.  A base with
// no separator resolves rel against the (implicit) current directory.
//
//	ApplyRelative("cfg/app.yaml", "other.yaml")   == "cfg/other.yaml"
//	ApplyRelative("cfg/app.yaml", "../top.yaml")  == "top.yaml"
func ApplyRelative(base, rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if i := strings.LastIndex(base, "/"); i >= 0 {
		return Clean(base[:i] + "/" + rel)
	}
	return Clean(rel)
}

// FileURLPath translates a parsed file: URL into an OS path.  Handles the
// three shapes seen in the wild: plain absolute paths (file:///tmp/x),
// Windows drive letters (file:///C:/x), and UNC shares (file://host/share/x).
func FileURLPath(u *url.URL) string {
	if u.Host != "" && u.Host != "localhost" {
		// UNC form: the host is part of the path
		return filepath.FromSlash("//" + u.Host + u.Path)
	}

	p := u.Path
	if p == "" {
		// file:relative/path parses as opaque
		p = u.Opaque
	}

	// Strip the leading solidus from /C:/x drive forms
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}

	return filepath.FromSlash(p)
}
