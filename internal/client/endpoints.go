package client

import (
	"fmt"
	"net/url"
	"strings"
)

// Default action suffixes, resolved against the list URL.
const (
	DefaultCreatePath   = "create"
	DefaultDeletePath   = "delete"
	DefaultCompletePath = "complete"
)

// Endpoints holds the absolute URLs of the four actions.
type Endpoints struct {
	List     string
	Create   string
	Delete   string
	Complete string
}

// NewEndpoints resolves the action suffixes against base. The base path is
// treated as a directory whether or not it ends in a slash, so
// "http://h/app" and "http://h/app/" both give "http://h/app/create". Empty
// suffixes fall back to the defaults.
func NewEndpoints(base, createPath, deletePath, completePath string) (Endpoints, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return Endpoints{}, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Endpoints{}, fmt.Errorf("invalid base url %q: scheme must be http or https", base)
	}
	if u.Host == "" {
		return Endpoints{}, fmt.Errorf("invalid base url %q: missing host", base)
	}
	u.Fragment = ""
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
		u.RawPath = ""
	}

	resolve := func(suffix, def string) string {
		suffix = strings.TrimLeft(strings.TrimSpace(suffix), "/")
		if suffix == "" {
			suffix = def
		}
		return u.ResolveReference(&url.URL{Path: suffix}).String()
	}

	return Endpoints{
		List:     u.String(),
		Create:   resolve(createPath, DefaultCreatePath),
		Delete:   resolve(deletePath, DefaultDeletePath),
		Complete: resolve(completePath, DefaultCompletePath),
	}, nil
}
