package resloc

import (
	"reflect"

	"github.com/pkg/errors"
)

// ProtocolResolver can claim a location before any of the loader's built-in
// rules run.  Resolve returns nil to decline; the first registered resolver
// returning non-nil wins.  The loader is passed in so a resolver may ask it
// to finish the job, e.g. after rewriting the location.
type ProtocolResolver interface {
	Resolve(location string, loader *Loader) Resource
}

// ResolverFunc is a function that can be used to satisfy the
// ProtocolResolver interface.
type ResolverFunc func(location string, loader *Loader) Resource

// Resolve resolves a location by calling f.
func (f ResolverFunc) Resolve(location string, loader *Loader) Resource {
	return f(location, loader)
}

// RegisterResolver adds a protocol resolver to the end of the loader's
// chain.  Registering a resolver equal to one already present is a no-op,
// so a resolver is never invoked twice for one location.  Registration may
// happen at any time; a resolution already in progress keeps iterating over
// the chain it started with.
func (l *Loader) RegisterResolver(r ProtocolResolver) error {
	if r == nil {
		return errors.New("resolver must not be nil")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.resolvers {
		if equalResolvers(existing, r) {
			return nil
		}
	}
	l.resolvers = append(l.resolvers, r)
	return nil
}

// RemoveResolver removes a previously registered resolver, reporting
// whether anything was removed.
func (l *Loader) RemoveResolver(r ProtocolResolver) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, existing := range l.resolvers {
		if equalResolvers(existing, r) {
			l.resolvers = append(l.resolvers[:i], l.resolvers[i+1:]...)
			return true
		}
	}
	return false
}

// Resolvers returns the registered resolvers in registration order.
// The slice is a copy; use RegisterResolver and RemoveResolver to mutate
// the chain.
func (l *Loader) Resolvers() []ProtocolResolver {
	return l.snapshot()
}

func (l *Loader) snapshot() []ProtocolResolver {
	l.mu.Lock()
	defer l.mu.Unlock()

	rs := make([]ProtocolResolver, len(l.resolvers))
	copy(rs, l.resolvers)
	return rs
}

// equalResolvers compares two resolvers with ==, guarding against dynamic
// types (such as ResolverFunc) that would panic on interface comparison.
// Uncomparable resolvers are never considered duplicates.
func equalResolvers(a, b ProtocolResolver) bool {
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}
