package resloc

import (
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/birkland/resloc/internal/pathutil"
	"github.com/pkg/errors"
)

// PathResolver interprets a bare resource path ("cfg/app.yaml" or
// "/cfg/app.yaml") as a Resource.  It is the single seam through which the
// meaning of "resource-space-relative" is customized; everything else in the
// resolution algorithm is fixed.  ResolvePath must succeed for any string;
// an unresolvable path yields a resource that fails at access time, not a
// resolution failure.  The returned resource should be a ContextResource
// whose relative resolution stays within the same interpretation.
type PathResolver interface {
	ResolvePath(path string) Resource
}

// PathResolverFunc is a function that can be used to satisfy the
// PathResolver interface.
type PathResolverFunc func(path string) Resource

// ResolvePath resolves a resource path by calling f.
func (f PathResolverFunc) ResolvePath(path string) Resource {
	return f(path)
}

// FilePathResolver interprets resource paths as files beneath a root
// directory.  A leading solidus means the root directory, not the
// filesystem root.
type FilePathResolver struct {
	Root string // OS path of the directory paths resolve beneath
}

// ResolvePath returns a file context resource beneath the root.
func (p FilePathResolver) ResolvePath(path string) Resource {
	return NewFileContextResource(p.Root, path)
}

// NewFileLoader creates a loader whose bare paths are files beneath the
// given root directory.  URLs, classpath: locations, and protocol
// resolvers behave as with any other loader.
func NewFileLoader(root string) *Loader {
	return NewLoader(WithPathResolver(FilePathResolver{Root: root}))
}

// RootedPathResolver interprets resource paths relative to a base directory
// inside a namespace, e.g. resources kept alongside a particular asset
// package.  The zero value resolves against the root of the default
// namespace.
type RootedPathResolver struct {
	ns   *Namespace
	base string
}

// NewRootedPathResolver creates a resolver anchored at base within fsys.
// fsys may be nil to use the process default namespace at access time.
func NewRootedPathResolver(fsys fs.FS, base string) RootedPathResolver {
	var ns *Namespace
	if fsys != nil {
		ns = NewNamespace(fsys)
	}
	return RootedPathResolver{ns: ns, base: pathutil.Clean(base)}
}

// ResolvePath returns a context resource anchored at the resolver's base.
func (p RootedPathResolver) ResolvePath(path string) Resource {
	return RootedContextResource{
		ns:   p.ns,
		base: p.base,
		rel:  pathutil.Clean(trimLeadingSolidus(path)),
	}
}

// NewRootedLoader creates a loader whose bare paths resolve beneath base
// within fsys.
func NewRootedLoader(fsys fs.FS, base string) *Loader {
	p := NewRootedPathResolver(fsys, base)
	return NewLoader(WithPathResolver(p), func(l *Loader) {
		l.ns = p.ns
	})
}

// RootedContextResource is a namespace resource anchored beneath a base
// directory.  PathWithinContext is relative to the base; relative
// resolution stays anchored to it.
type RootedContextResource struct {
	ns   *Namespace
	base string
	rel  string
}

// Path is the full slash-delimited path within the namespace.
func (r RootedContextResource) Path() string {
	return pathutil.Clean(path.Join(r.base, r.rel))
}

// FS returns the filesystem backing this resource, falling back to the
// default namespace when none was supplied.
func (r RootedContextResource) FS() fs.FS {
	if r.ns != nil && r.ns.FS != nil {
		return r.ns.FS
	}
	return DefaultNamespace().FS
}

// Open opens the resource for reading.
func (r RootedContextResource) Open() (io.ReadCloser, error) {
	f, err := r.FS().Open(r.Path())
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", r.Description())
	}
	return f, nil
}

// Exists reports whether the path is present in the namespace.
func (r RootedContextResource) Exists() bool {
	_, err := fs.Stat(r.FS(), r.Path())
	return err == nil
}

// Description identifies the resource for humans.
func (r RootedContextResource) Description() string {
	return fmt.Sprintf("namespace resource [%s]", r.Path())
}

// PathWithinContext is the path relative to the anchoring base.
func (r RootedContextResource) PathWithinContext() string {
	return r.rel
}

// CreateRelative stays anchored to the same base.
func (r RootedContextResource) CreateRelative(relative string) (Resource, error) {
	return RootedContextResource{
		ns:   r.ns,
		base: r.base,
		rel:  pathutil.ApplyRelative(r.rel, relative),
	}, nil
}
