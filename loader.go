package resloc

import (
	"io/fs"
	"net/url"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// ClasspathPrefix marks a location as a namespace-rooted path,
// e.g. "classpath:cfg/app.yaml".  Matching is case sensitive and exact.
const ClasspathPrefix = "classpath:"

// Loader resolves location strings into Resources.  One Loader may be
// shared freely between goroutines.
//
// Resolution tries, in strict order:
//
//  1. every registered ProtocolResolver, in registration order; the first
//     non-nil result wins,
//  2. a leading "/": the location is handed to the path resolution hook,
//  3. the "classpath:" prefix: the remainder becomes a namespace resource,
//     always namespace-rooted regardless of the configured hook,
//  4. a URL parse: file: URLs become filesystem resources, any other
//     scheme a generic URL resource.  A string that does not parse as a
//     URL is not an error; it falls back to the path resolution hook.
//
// Protocol resolvers run first so callers can override any built-in rule.
// The leading-solidus check runs before URL parsing so namespace paths are
// never misread as relative URLs.
type Loader struct {
	ns *Namespace

	pmu     sync.RWMutex
	pathres PathResolver

	mu        sync.Mutex
	resolvers []ProtocolResolver

	cmu    sync.Mutex
	caches map[any]*Cache
}

// Option configures a Loader.
type Option func(*Loader)

// WithNamespace sets the namespace used for namespace-rooted resources.
// Without it, the loader defers to the process default namespace at
// access time.
func WithNamespace(fsys fs.FS) Option {
	return func(l *Loader) {
		l.ns = NewNamespace(fsys)
	}
}

// WithPathResolver sets the path resolution hook that interprets bare and
// leading-solidus locations.
func WithPathResolver(p PathResolver) Option {
	return func(l *Loader) {
		l.pathres = p
	}
}

// NewLoader creates a loader with the given options.  With no options, bare
// paths resolve to namespace-rooted context resources against the process
// default namespace.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Namespace returns the loader's namespace, falling back to the process
// default when none was supplied.
func (l *Loader) Namespace() *Namespace {
	if l.ns != nil {
		return l.ns
	}
	return DefaultNamespace()
}

// SetPathResolver replaces the path resolution hook.  A nil resolver
// restores the default namespace-rooted behavior.  The hook may be swapped
// while other goroutines are resolving; each resolution uses whichever hook
// it observes.
func (l *Loader) SetPathResolver(p PathResolver) {
	l.pmu.Lock()
	defer l.pmu.Unlock()
	l.pathres = p
}

func (l *Loader) pathResolver() PathResolver {
	l.pmu.RLock()
	defer l.pmu.RUnlock()
	return l.pathres
}

// Resolve turns a location string into a Resource.  The only failure is an
// empty location; every non-empty string resolves to some Resource, whose
// existence is checked at access time rather than here.
func (l *Loader) Resolve(location string) (Resource, error) {
	if location == "" {
		return nil, errors.New("location must not be empty")
	}

	for _, pr := range l.snapshot() {
		if r := pr.Resolve(location, l); r != nil {
			return r, nil
		}
	}

	if strings.HasPrefix(location, "/") {
		return l.resolvePath(location), nil
	}

	if strings.HasPrefix(location, ClasspathPrefix) {
		return NewFSResource(l.ns, strings.TrimPrefix(location, ClasspathPrefix)), nil
	}

	if u, ok := parseURL(location); ok {
		if u.Scheme == "file" {
			return fileFromURL(u), nil
		}
		return URLResource{raw: location}, nil
	}

	// Not a URL: treat it as a plain resource path
	return l.resolvePath(location), nil
}

func (l *Loader) resolvePath(path string) Resource {
	if p := l.pathResolver(); p != nil {
		return p.ResolvePath(path)
	}
	return FSContextResource{NewFSResource(l.ns, path)}
}

// parseURL reports whether location is usable as a URL.  url.Parse is
// lenient, so a location only counts when it carries a scheme longer than
// one character; this keeps Windows drive letters ("C:/x") and schemeless
// strings on the plain-path side.
func parseURL(location string) (*url.URL, bool) {
	u, err := url.Parse(location)
	if err != nil || len(u.Scheme) < 2 {
		return nil, false
	}
	return u, true
}
