package resloc

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/birkland/resloc/internal/pathutil"
	"github.com/pkg/errors"
)

// Namespace is the classpath-like resource space a loader reads namespace
// resources from.  It is a stable identity wrapper around an fs.FS: two
// FSResources are equal only when they share the same *Namespace, so reuse
// one Namespace per resource space rather than wrapping the same fs.FS
// repeatedly.
type Namespace struct {
	FS fs.FS
}

// NewNamespace wraps an fs.FS as a Namespace.
func NewNamespace(fsys fs.FS) *Namespace {
	return &Namespace{FS: fsys}
}

var (
	defaultNSMu sync.Mutex
	defaultNS   *Namespace
)

// DefaultNamespace returns the process-wide default namespace, used by
// loaders and resources that were not given an explicit one.  If none has
// been set, it is lazily initialized to the current working directory.
func DefaultNamespace() *Namespace {
	defaultNSMu.Lock()
	defer defaultNSMu.Unlock()
	if defaultNS == nil {
		defaultNS = NewNamespace(os.DirFS("."))
	}
	return defaultNS
}

// SetDefaultNamespace replaces the process-wide default namespace.
func SetDefaultNamespace(ns *Namespace) {
	defaultNSMu.Lock()
	defer defaultNSMu.Unlock()
	defaultNS = ns
}

// FSResource is a Resource inside a Namespace.  A nil namespace is
// meaningful: it defers to the process default at access time, not at
// construction time.
type FSResource struct {
	ns   *Namespace
	path string
}

// NewFSResource creates a namespace resource for the given slash-delimited
// path.  A leading solidus is dropped; namespace paths are always relative
// to the namespace root.  ns may be nil to use the default namespace at
// access time.
func NewFSResource(ns *Namespace, path string) FSResource {
	return FSResource{
		ns:   ns,
		path: pathutil.Clean(strings.TrimPrefix(path, "/")),
	}
}

// Path is the resource's slash-delimited path within its namespace.
func (r FSResource) Path() string {
	return r.path
}

// FS returns the filesystem backing this resource, falling back to the
// default namespace when none was supplied.
func (r FSResource) FS() fs.FS {
	if r.ns != nil && r.ns.FS != nil {
		return r.ns.FS
	}
	return DefaultNamespace().FS
}

// Open opens the resource for reading.
func (r FSResource) Open() (io.ReadCloser, error) {
	f, err := r.FS().Open(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", r.Description())
	}
	return f, nil
}

// Exists reports whether the path is present in the namespace.
func (r FSResource) Exists() bool {
	_, err := fs.Stat(r.FS(), r.path)
	return err == nil
}

// Description identifies the resource for humans.
func (r FSResource) Description() string {
	return fmt.Sprintf("namespace resource [%s]", r.path)
}

// CreateRelative resolves relative against this resource's path, within the
// same namespace.
func (r FSResource) CreateRelative(relative string) (Resource, error) {
	return FSResource{
		ns:   r.ns,
		path: pathutil.ApplyRelative(r.path, relative),
	}, nil
}

// FSContextResource is an FSResource that explicitly expresses a
// context-relative path.  It is what the default path resolution hook
// produces for bare and leading-solidus locations.
type FSContextResource struct {
	FSResource
}

// PathWithinContext is the path relative to the namespace root.
func (r FSContextResource) PathWithinContext() string {
	return r.path
}

// CreateRelative stays within the namespace context.
func (r FSContextResource) CreateRelative(relative string) (Resource, error) {
	return FSContextResource{FSResource{
		ns:   r.ns,
		path: pathutil.ApplyRelative(r.path, relative),
	}}, nil
}
