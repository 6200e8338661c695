package http

import (
	"fmt"
	"net/url"
)

// DefaultScheme is used when BuildURL is called without WithScheme.
const DefaultScheme = "https"

type buildOptions struct {
	scheme string
}

// Option customizes BuildURL.
type Option func(*buildOptions)

// WithScheme overrides DefaultScheme. An empty scheme is ignored.
func WithScheme(scheme string) Option {
	return func(o *buildOptions) {
		if scheme != "" {
			o.scheme = scheme
		}
	}
}

// BuildURL resolves path against scheme://host and sets every param on the
// query string in order. A key set more than once keeps only its last value.
// The result is fully percent-encoded by net/url; spaces in query values are
// encoded as '+'.
//
// Host must not carry a scheme. If the base or the resolved path does not
// parse, an *InvalidURLError is returned.
func BuildURL(host, path string, params Params, opts ...Option) (string, error) {
	o := buildOptions{scheme: DefaultScheme}
	for _, opt := range opts {
		opt(&o)
	}

	baseURL := o.scheme + "://" + host
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", &InvalidURLError{Input: baseURL, Err: err}
	}
	if base.Host == "" {
		return "", &InvalidURLError{Input: baseURL, Err: fmt.Errorf("missing host")}
	}

	ref, err := url.Parse(path)
	if err != nil {
		return "", &InvalidURLError{Input: path, Err: err}
	}
	u := base.ResolveReference(ref)

	if len(params) > 0 {
		q, err := parseOrderedQuery(u.RawQuery)
		if err != nil {
			return "", &InvalidURLError{Input: path, Err: fmt.Errorf("malformed query: %w", err)}
		}
		for _, param := range params {
			value, err := stringify(param.Value)
			if err != nil {
				return "", fmt.Errorf("query parameter %q: %w", param.Key, err)
			}
			q = q.set(param.Key, value)
		}
		u.RawQuery = q.encode()
		u.ForceQuery = false
	}

	return u.String(), nil
}

// MustBuildURL is like BuildURL but panics on error. Use it only for inputs
// known at compile time.
func MustBuildURL(host, path string, params Params, opts ...Option) string {
	u, err := BuildURL(host, path, params, opts...)
	if err != nil {
		panic(fmt.Sprintf("http: cannot build url: %v", err))
	}
	return u
}
