// Package pattern expands wildcard location patterns into lists of
// resources, on top of a resloc.Loader.  Patterns use glob syntax with **
// for any number of directories, e.g. "classpath:cfg/**/*.yaml" or
// "/etc/app/*.conf".  A pattern without wildcards resolves to exactly the
// loader's single result.
package pattern

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/birkland/resloc"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Resolver expands location patterns against a loader.  Which storage gets
// enumerated follows from what the pattern's static prefix resolves to:
// namespace resources glob the namespace, filesystem resources walk the
// directory tree.
type Resolver struct {
	loader *resloc.Loader
}

// New creates a pattern resolver on top of the given loader.
func New(l *resloc.Loader) *Resolver {
	return &Resolver{loader: l}
}

// Capability views of the resources a pattern root may resolve to.
type fsBacked interface {
	resloc.Resource
	FS() fs.FS
	Path() string
}

type osBacked interface {
	resloc.Resource
	OSPath() string
}

// Resolve expands a single pattern.  Matches cover regular files only, in
// lexical order; a pattern whose static root does not exist yields no
// matches and no error, consistent with existence being an access-time
// concern.
func (r *Resolver) Resolve(pattern string) ([]resloc.Resource, error) {
	if pattern == "" {
		return nil, errors.New("pattern must not be empty")
	}

	if !hasMeta(pattern) {
		res, err := r.loader.Resolve(pattern)
		if err != nil {
			return nil, err
		}
		return []resloc.Resource{res}, nil
	}

	rootLoc, remainder := splitPattern(pattern)

	resolveLoc := rootLoc
	if resolveLoc == "" {
		resolveLoc = "/"
	}
	base, err := r.loader.Resolve(resolveLoc)
	if err != nil {
		return nil, errors.Wrapf(err, "could not resolve pattern root of %s", pattern)
	}

	var rels []string
	switch b := base.(type) {
	case osBacked:
		rels, err = globOS(b.OSPath(), remainder)
	case fsBacked:
		rels, err = globFS(b.FS(), b.Path(), remainder)
	default:
		return nil, fmt.Errorf("cannot expand pattern %s against %s", pattern, base.Description())
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not expand pattern %s", pattern)
	}

	resources := make([]resloc.Resource, 0, len(rels))
	for _, rel := range rels {
		res, err := r.loader.Resolve(rootLoc + rel)
		if err != nil {
			return nil, errors.Wrapf(err, "could not resolve match %s of pattern %s", rel, pattern)
		}
		resources = append(resources, res)
	}
	return resources, nil
}

// ResolveAll expands several patterns concurrently.  Results are
// concatenated in pattern order; the first failing pattern fails the call.
func (r *Resolver) ResolveAll(patterns ...string) ([]resloc.Resource, error) {
	results := make([][]resloc.Resource, len(patterns))

	var g errgroup.Group
	for i, p := range patterns {
		i, p := i, p
		g.Go(func() error {
			rs, err := r.Resolve(p)
			results[i] = rs
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []resloc.Resource
	for _, rs := range results {
		all = append(all, rs...)
	}
	return all, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// splitPattern cuts a pattern into its static root location (everything up
// to and including the last separator before the first wildcard) and the
// glob remainder.  "classpath:cfg/**/*.yaml" becomes ("classpath:cfg/",
// "**/*.yaml"); a bare "*.yaml" has an empty root.
func splitPattern(pattern string) (root, remainder string) {
	meta := strings.IndexAny(pattern, "*?[{")

	cut := strings.LastIndex(pattern[:meta], "/")
	if cut < 0 {
		// No directory part; a pseudo-scheme prefix may still anchor it
		cut = strings.LastIndex(pattern[:meta], ":")
	}
	if cut < 0 {
		return "", pattern
	}
	return pattern[:cut+1], pattern[cut+1:]
}

// globFS matches the remainder beneath base within a namespace, returning
// base-relative slash paths of regular files.
func globFS(fsys fs.FS, base, remainder string) ([]string, error) {
	full := remainder
	if base != "" {
		full = base + "/" + remainder
	}

	matches, err := doublestar.Glob(fsys, full)
	if err != nil {
		return nil, err
	}

	var rels []string
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil || info.IsDir() {
			continue
		}
		rel := m
		if base != "" {
			rel = strings.TrimPrefix(m, base+"/")
		}
		rels = append(rels, rel)
	}

	sort.Strings(rels)
	return rels, nil
}

// globOS walks the directory tree beneath root and matches the remainder
// against root-relative slash paths of regular files.
func globOS(root, remainder string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "error reading pattern root %s", root)
	}

	var rels []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(ospath string, dirent *godirwalk.Dirent) error {
			if dirent.IsDir() {
				return nil
			}

			rel := strings.TrimPrefix(filepath.ToSlash(strings.TrimPrefix(ospath, root)), "/")
			ok, err := doublestar.Match(remainder, rel)
			if err != nil {
				return errors.Wrapf(err, "bad pattern %s", remainder)
			}
			if ok {
				rels = append(rels, rel)
			}
			return nil
		},
		Unsorted:            true,
		FollowSymbolicLinks: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error walking %s", root)
	}

	sort.Strings(rels)
	return rels, nil
}
