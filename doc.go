// Package resloc resolves opaque location strings into uniform resource handles.
//
// A location may be a namespace path ("/cfg/app.yaml" or "classpath:cfg/app.yaml"),
// a URL ("file:///tmp/x", "http://example.com/x"), or anything a registered
// ProtocolResolver claims.  Callers get back a Resource without needing to know
// which kind of storage backs it.  See Loader for the resolution rules, and the
// pattern subpackage for wildcard expansion of locations.
package resloc
