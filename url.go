package resloc

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// URLResource is a generic network-addressable Resource.  Identity is the
// raw URL string, so two resolutions of the same location compare equal.
// No I/O happens until Open or Exists is called.
type URLResource struct {
	raw string
}

// NewURLResource creates a resource for an already validated URL string.
func NewURLResource(raw string) URLResource {
	return URLResource{raw: raw}
}

// URL parses and returns the resource's URL.
func (r URLResource) URL() (*url.URL, error) {
	u, err := url.Parse(r.raw)
	return u, errors.Wrapf(err, "could not parse URL %s", r.raw)
}

// Open fetches the URL.  Only http and https are supported; other schemes
// fail here rather than at resolution time.
func (r URLResource) Open() (io.ReadCloser, error) {
	u, err := r.URL()
	if err != nil {
		return nil, err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("cannot open %s: unsupported scheme %q", r.Description(), u.Scheme)
	}

	resp, err := http.Get(r.raw)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", r.Description())
	}
	if resp.StatusCode >= 400 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("could not open %s: %s", r.Description(), resp.Status)
	}
	return resp.Body, nil
}

// Exists probes the URL with a HEAD request.  Non-HTTP schemes report false;
// their existence cannot be determined without opening.
func (r URLResource) Exists() bool {
	u, err := r.URL()
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}

	resp, err := http.Head(r.raw)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode < 400
}

// Description identifies the resource for humans.
func (r URLResource) Description() string {
	return fmt.Sprintf("URL [%s]", r.raw)
}

// CreateRelative resolves relative against this URL per standard URL
// reference resolution.
func (r URLResource) CreateRelative(relative string) (Resource, error) {
	u, err := r.URL()
	if err != nil {
		return nil, err
	}

	rel, err := u.Parse(relative)
	if err != nil {
		return nil, errors.Wrapf(err, "could not resolve %q against %s", relative, r.Description())
	}
	return URLResource{raw: rel.String()}, nil
}
