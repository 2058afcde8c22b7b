package pagination

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize defines the fallback number of items returned when the client omits pageSize.
	DefaultPageSize = 12
	// DefaultMaxPageSize caps the supported pageSize to prevent unbounded responses.
	DefaultMaxPageSize = 100
)

// Params bundles the offset pagination values extracted from a request.
type Params struct {
	Page     int
	PageSize int
}

// Options control how Parse behaves for a given handler layer.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
}

var (
	ErrInvalidPage     = errors.New("pagination: invalid page")
	ErrInvalidPageSize = errors.New("pagination: invalid pageSize")
)

// FromRequest parses the supported query parameters from the supplied request.
func FromRequest(r *http.Request, opts Options) (Params, error) {
	if r == nil {
		return Params{}, errors.New("pagination: nil request")
	}
	return Parse(r.URL.Query(), opts)
}

// Parse consumes the provided query values and returns the normalised Params representation.
func Parse(values url.Values, opts Options) (Params, error) {
	if values == nil {
		values = url.Values{}
	}

	page, err := parsePage(values.Get("page"))
	if err != nil {
		return Params{}, err
	}

	pageSize, err := parsePageSize(values.Get("pageSize"), opts)
	if err != nil {
		return Params{}, err
	}

	return Params{Page: page, PageSize: pageSize}, nil
}

func parsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPage, raw)
	}
	return page, nil
}

func parsePageSize(raw string, opts Options) (int, error) {
	fallback := opts.DefaultPageSize
	if fallback <= 0 {
		fallback = DefaultPageSize
	}
	max := opts.MaxPageSize
	if max <= 0 {
		max = DefaultMaxPageSize
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}

	size, err := strconv.Atoi(raw)
	if err != nil || size < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPageSize, raw)
	}
	if size > max {
		size = max
	}
	return size, nil
}
