package resloc

import "io"

// Resource is a handle to content at some storage location.  A Resource is
// constructed without touching storage; existence checks and opening happen
// only when asked for.  Implementations are small comparable values, so a
// Resource may be used as a map key, with equality meaning "same backing
// location".
type Resource interface {

	// Open returns a reader over the resource content.  It fails if the
	// resource does not exist or cannot be read.
	Open() (io.ReadCloser, error)

	// Exists reports whether the resource currently points at something.
	Exists() bool

	// Description identifies the resource for humans, e.g. in error messages.
	Description() string

	// CreateRelative builds a resource for a path relative to this one,
	// per standard relative path rules ("." and ".." are understood).
	CreateRelative(relative string) (Resource, error)
}

// ContextResource is a Resource whose path is interpreted relative to an
// implicit base understood by the loader that produced it.  Resolving a
// relative path against a ContextResource yields another resource of the
// same kind, anchored to the same base.
type ContextResource interface {
	Resource

	// PathWithinContext is the resource path relative to the implicit base.
	PathWithinContext() string
}

// AsContext reports whether r is a context resource, returning the
// refinement if so.
func AsContext(r Resource) (ContextResource, bool) {
	c, ok := r.(ContextResource)
	return c, ok
}
