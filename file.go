package resloc

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/birkland/resloc/internal/pathutil"
	"github.com/pkg/errors"
)

// fileFromURL builds a filesystem resource from a parsed file: URL,
// including UNC and drive-letter forms.
func fileFromURL(u *url.URL) FileResource {
	return NewFileResource(pathutil.FileURLPath(u))
}

// FileResource is a Resource on the local filesystem, free-standing rather
// than anchored to any context.  It is what file: URLs resolve to.
type FileResource struct {
	path string
}

// NewFileResource creates a filesystem resource for the given OS path.
func NewFileResource(path string) FileResource {
	return FileResource{path: filepath.Clean(path)}
}

// OSPath is the cleaned OS filesystem path of the resource.
func (r FileResource) OSPath() string {
	return r.path
}

// Open opens the file for reading.
func (r FileResource) Open() (io.ReadCloser, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", r.Description())
	}
	return f, nil
}

// Exists reports whether the file is present.
func (r FileResource) Exists() bool {
	_, err := os.Stat(r.path)
	return err == nil
}

// Description identifies the resource for humans.
func (r FileResource) Description() string {
	return fmt.Sprintf("file [%s]", r.path)
}

// CreateRelative resolves relative against the file's directory.
func (r FileResource) CreateRelative(relative string) (Resource, error) {
	resolved := pathutil.ApplyRelative(filepath.ToSlash(r.path), relative)
	return FileResource{path: filepath.FromSlash(resolved)}, nil
}

// FileContextResource is a filesystem resource whose path is interpreted
// relative to a root directory.  Produced by FilePathResolver; relative
// resolution never escapes into another resource kind.
type FileContextResource struct {
	root string // OS path of the context root
	rel  string // slash-delimited path within the context
}

// NewFileContextResource creates a context resource for the given
// slash-delimited path beneath root.  A leading solidus means the context
// root, not the filesystem root.
func NewFileContextResource(root, path string) FileContextResource {
	return FileContextResource{
		root: filepath.Clean(root),
		rel:  pathutil.Clean(trimLeadingSolidus(path)),
	}
}

// OSPath is the full OS filesystem path of the resource.
func (r FileContextResource) OSPath() string {
	return filepath.Join(r.root, filepath.FromSlash(r.rel))
}

// Root is the OS path of the context root directory.
func (r FileContextResource) Root() string {
	return r.root
}

// Open opens the file for reading.
func (r FileContextResource) Open() (io.ReadCloser, error) {
	f, err := os.Open(r.OSPath())
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", r.Description())
	}
	return f, nil
}

// Exists reports whether the file is present.
func (r FileContextResource) Exists() bool {
	_, err := os.Stat(r.OSPath())
	return err == nil
}

// Description identifies the resource for humans.
func (r FileContextResource) Description() string {
	return fmt.Sprintf("file [%s]", r.OSPath())
}

// PathWithinContext is the path relative to the context root.
func (r FileContextResource) PathWithinContext() string {
	return r.rel
}

// CreateRelative stays anchored to the same context root.
func (r FileContextResource) CreateRelative(relative string) (Resource, error) {
	return FileContextResource{
		root: r.root,
		rel:  pathutil.ApplyRelative(r.rel, relative),
	}, nil
}

func trimLeadingSolidus(p string) string {
	if len(p) > 0 && p[0] == '/' {
		return p[1:]
	}
	return p
}
