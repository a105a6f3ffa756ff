package resloc_test

import (
	"io"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/birkland/resloc"
)

func newNamespaceLoader() *resloc.Loader {
	return resloc.NewLoader(resloc.WithNamespace(fstest.MapFS{
		"cfg/app.yaml":   &fstest.MapFile{Data: []byte("name: app\n")},
		"cfg/other.yaml": &fstest.MapFile{Data: []byte("name: other\n")},
	}))
}

func TestResolveEmptyLocation(t *testing.T) {
	if _, err := resloc.NewLoader().Resolve(""); err == nil {
		t.Errorf("expected an error resolving the empty location")
	}
}

func TestResolveDispatch(t *testing.T) {
	loader := newNamespaceLoader()

	cases := []struct {
		name     string
		location string
		verify   func(t *testing.T, r resloc.Resource)
	}{
		{"leading solidus", "/cfg/app.yaml", func(t *testing.T, r resloc.Resource) {
			ctx, ok := resloc.AsContext(r)
			if !ok {
				t.Fatalf("expected a context resource, got %s", r.Description())
			}
			if ctx.PathWithinContext() != "cfg/app.yaml" {
				t.Errorf("wrong context path %s", ctx.PathWithinContext())
			}
		}},
		{"classpath prefix", "classpath:cfg/app.yaml", func(t *testing.T, r resloc.Resource) {
			fsr, ok := r.(resloc.FSResource)
			if !ok {
				t.Fatalf("expected a namespace resource, got %s", r.Description())
			}
			if fsr.Path() != "cfg/app.yaml" {
				t.Errorf("wrong path %s", fsr.Path())
			}
			if _, ok := resloc.AsContext(r); ok {
				t.Errorf("classpath resources should not be context resources")
			}
		}},
		{"http URL", "http://example.com/x", func(t *testing.T, r resloc.Resource) {
			if _, ok := r.(resloc.URLResource); !ok {
				t.Fatalf("expected a URL resource, got %s", r.Description())
			}
		}},
		{"file URL", "file:///tmp/x", func(t *testing.T, r resloc.Resource) {
			f, ok := r.(resloc.FileResource)
			if !ok {
				t.Fatalf("expected a file resource, got %s", r.Description())
			}
			if f.OSPath() != "/tmp/x" {
				t.Errorf("wrong path %s", f.OSPath())
			}
		}},
		{"drive letter is not a URL", "C:/weird", func(t *testing.T, r resloc.Resource) {
			ctx, ok := resloc.AsContext(r)
			if !ok {
				t.Fatalf("expected hook fallback, got %s", r.Description())
			}
			if ctx.PathWithinContext() != "C:/weird" {
				t.Errorf("wrong context path %s", ctx.PathWithinContext())
			}
		}},
		{"malformed URL falls back", "not a url###", func(t *testing.T, r resloc.Resource) {
			if _, ok := resloc.AsContext(r); !ok {
				t.Fatalf("expected hook fallback, got %s", r.Description())
			}
		}},
		{"unknown scheme is a URL", "myproto:x", func(t *testing.T, r resloc.Resource) {
			// Unlike single-letter drive prefixes, a plausible scheme is
			// taken at its word: the location becomes a generic URL
			// resource that fails at open time, not a path lookup.
			if _, ok := r.(resloc.URLResource); !ok {
				t.Fatalf("expected a URL resource, got %s", r.Description())
			}
			if _, err := r.Open(); err == nil {
				t.Errorf("opening an unknown scheme should fail")
			}
		}},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			r, err := loader.Resolve(c.location)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			c.verify(t, r)
		})
	}
}

// A malformed location and the same location given as an explicit resource
// path end up at the same hook, and so at the same resource.
func TestFallbackEquivalence(t *testing.T) {
	loader := newNamespaceLoader()

	viaFallback, err := loader.Resolve("not a url###")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	viaHook, err := loader.Resolve("/not a url###")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if viaFallback != viaHook {
		t.Errorf("fallback resolved %s, hook resolved %s", viaFallback.Description(), viaHook.Description())
	}
}

func TestProtocolResolverPrecedence(t *testing.T) {
	loader := newNamespaceLoader()
	claimed := resloc.NewFileResource("/claimed")

	err := loader.RegisterResolver(resloc.ResolverFunc(func(location string, l *resloc.Loader) resloc.Resource {
		return claimed
	}))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	// A resolver that matches everything wins over every built-in rule
	for _, location := range []string{"/cfg/app.yaml", "classpath:cfg/app.yaml", "http://example.com/x", "plain/path"} {
		r, err := loader.Resolve(location)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if r != claimed {
			t.Errorf("resolver did not win for %s: got %s", location, r.Description())
		}
	}
}

func TestClasspathBypassesHook(t *testing.T) {
	var hookPaths []string

	loader := resloc.NewLoader(resloc.WithPathResolver(resloc.PathResolverFunc(func(path string) resloc.Resource {
		hookPaths = append(hookPaths, path)
		return resloc.NewFileContextResource("/base", path)
	})))

	for _, location := range []string{"/a/b", "classpath:a/b", "a/b"} {
		if _, err := loader.Resolve(location); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	// Only the leading-solidus and fallback forms reach the hook; the
	// classpath form is always namespace-rooted.
	if len(hookPaths) != 2 || hookPaths[0] != "/a/b" || hookPaths[1] != "a/b" {
		t.Errorf("hook saw wrong paths: %v", hookPaths)
	}
}

func TestNamespaceResourceAccess(t *testing.T) {
	loader := newNamespaceLoader()

	r, err := loader.Resolve("classpath:cfg/app.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if !r.Exists() {
		t.Errorf("%s should exist", r.Description())
	}

	body, err := r.Open()
	if err != nil {
		t.Fatalf("could not open %s: %s", r.Description(), err)
	}
	defer body.Close()

	content, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("could not read %s: %s", r.Description(), err)
	}
	if string(content) != "name: app\n" {
		t.Errorf("wrong content %q", content)
	}

	if missing, _ := loader.Resolve("classpath:cfg/missing.yaml"); missing.Exists() {
		t.Errorf("%s should not exist", missing.Description())
	}
}

func TestFileLoader(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sub/file.txt", "hello")

	loader := resloc.NewFileLoader(root)

	r, err := loader.Resolve("/sub/file.txt")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	ctx, ok := resloc.AsContext(r)
	if !ok {
		t.Fatalf("expected a context resource, got %s", r.Description())
	}
	if ctx.PathWithinContext() != "sub/file.txt" {
		t.Errorf("wrong context path %s", ctx.PathWithinContext())
	}
	if !r.Exists() {
		t.Errorf("%s should exist", r.Description())
	}

	// Relative resolution stays within the file context
	sibling, err := ctx.CreateRelative("other.txt")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	sctx, ok := resloc.AsContext(sibling)
	if !ok {
		t.Fatalf("relative resolution escaped the context: %s", sibling.Description())
	}
	if sctx.PathWithinContext() != "sub/other.txt" {
		t.Errorf("wrong context path %s", sctx.PathWithinContext())
	}
}

// The hook may be swapped while resolutions are in flight; every resolution
// sees one hook or the other, never a torn read.
func TestConcurrentHookReplacement(t *testing.T) {
	loader := newNamespaceLoader()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}

			if i%2 == 0 {
				loader.SetPathResolver(resloc.FilePathResolver{Root: "/srv"})
			} else {
				loader.SetPathResolver(nil)
			}
		}
	}()

	for i := 0; i < 200; i++ {
		r, err := loader.Resolve("cfg/app.yaml")
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		// Both hooks produce a context resource with the same context path
		ctx, ok := resloc.AsContext(r)
		if !ok {
			t.Fatalf("expected a context resource, got %s", r.Description())
		}
		if ctx.PathWithinContext() != "cfg/app.yaml" {
			t.Errorf("wrong context path %s", ctx.PathWithinContext())
		}
	}

	close(done)
	wg.Wait()
}

func TestRootedLoader(t *testing.T) {
	loader := resloc.NewRootedLoader(fstest.MapFS{
		"cfg/app.yaml":   &fstest.MapFile{Data: []byte("name: app\n")},
		"cfg/other.yaml": &fstest.MapFile{Data: []byte("name: other\n")},
	}, "cfg")

	r, err := loader.Resolve("app.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	ctx, ok := resloc.AsContext(r)
	if !ok {
		t.Fatalf("expected a context resource, got %s", r.Description())
	}
	if ctx.PathWithinContext() != "app.yaml" {
		t.Errorf("wrong context path %s", ctx.PathWithinContext())
	}
	if !r.Exists() {
		t.Errorf("%s should exist under the base", r.Description())
	}

	sibling, err := ctx.CreateRelative("other.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	sctx, ok := resloc.AsContext(sibling)
	if !ok {
		t.Fatalf("relative resolution escaped the context: %s", sibling.Description())
	}
	if sctx.PathWithinContext() != "other.yaml" {
		t.Errorf("wrong context path %s", sctx.PathWithinContext())
	}
	if !sibling.Exists() {
		t.Errorf("%s should exist under the base", sibling.Description())
	}
}
