package resloc_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/birkland/resloc"
)

func TestFileResourceAccess(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "data.txt", "content")

	r := resloc.NewFileResource(filepath.Join(root, "data.txt"))
	if !r.Exists() {
		t.Errorf("%s should exist", r.Description())
	}

	body, err := r.Open()
	if err != nil {
		t.Fatalf("could not open %s: %s", r.Description(), err)
	}
	defer body.Close()

	content, _ := io.ReadAll(body)
	if string(content) != "content" {
		t.Errorf("wrong content %q", content)
	}

	if missing := resloc.NewFileResource(filepath.Join(root, "missing.txt")); missing.Exists() {
		t.Errorf("%s should not exist", missing.Description())
	}
}

func TestFileResourceRelativeResolution(t *testing.T) {
	r, err := resloc.NewFileResource("/var/app/cfg/app.yaml").CreateRelative("../data/seed.sql")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	f, ok := r.(resloc.FileResource)
	if !ok {
		t.Fatalf("expected a file resource, got %s", r.Description())
	}
	if f.OSPath() != filepath.FromSlash("/var/app/data/seed.sql") {
		t.Errorf("wrong path %s", f.OSPath())
	}
}

func TestFileURLForms(t *testing.T) {
	loader := resloc.NewLoader()

	cases := []struct {
		name     string
		location string
		expected string // slash form
	}{
		{"absolute", "file:///tmp/x", "/tmp/x"},
		{"drive letter", "file:///C:/Users/x", "C:/Users/x"},
		{"localhost host", "file://localhost/tmp/x", "/tmp/x"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			r, err := loader.Resolve(c.location)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}

			f, ok := r.(resloc.FileResource)
			if !ok {
				t.Fatalf("expected a file resource, got %s", r.Description())
			}
			if f.OSPath() != filepath.FromSlash(c.expected) {
				t.Errorf("got %s, expected %s", f.OSPath(), c.expected)
			}
		})
	}
}

func TestFileContextResourceRootRelative(t *testing.T) {
	resolver := resloc.FilePathResolver{Root: "/srv/app"}

	// A leading solidus means the context root, not the filesystem root
	r := resolver.ResolvePath("/cfg/app.yaml")

	ctx, ok := resloc.AsContext(r)
	if !ok {
		t.Fatalf("expected a context resource, got %s", r.Description())
	}
	if ctx.PathWithinContext() != "cfg/app.yaml" {
		t.Errorf("wrong context path %s", ctx.PathWithinContext())
	}

	f, ok := r.(resloc.FileContextResource)
	if !ok {
		t.Fatalf("expected a file context resource, got %s", r.Description())
	}
	if f.OSPath() != filepath.FromSlash("/srv/app/cfg/app.yaml") {
		t.Errorf("wrong path %s", f.OSPath())
	}
}
