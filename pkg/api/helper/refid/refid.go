// Package refid extracts the numeric identifier that upstream reference
// URLs carry in their last path segment.
package refid

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	// ErrMalformedURL is returned when the reference does not parse as an
	// absolute URL.
	ErrMalformedURL = errors.New("reference is not an absolute URL")

	// ErrNoPathSegments is returned for opaque URLs (mailto:-style) that
	// have no decomposable path.
	ErrNoPathSegments = errors.New("reference URL has no decomposable path")

	// ErrEmptySegments is returned when the URL path contains no segments.
	ErrEmptySegments = errors.New("reference URL path has no segments")

	// ErrNonNumericID is returned when the last path segment is not an
	// unsigned base-10 integer that fits in 32 bits.
	ErrNonNumericID = errors.New("last path segment is not an unsigned integer")
)

// Parse extracts the id from a reference URL, e.g.
// "https://pokeapi.co/api/v2/pokemon/25/" yields 25. A single trailing
// slash is normalized away, so the meaningful segment is the one before
// the empty tail; both ".../25" and ".../25/" resolve to 25.
func Parse(rawURL string) (uint32, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return 0, fmt.Errorf("%w: %q", ErrMalformedURL, rawURL)
	}
	if u.Opaque != "" {
		return 0, fmt.Errorf("%w: %q", ErrNoPathSegments, rawURL)
	}

	path := strings.TrimSuffix(u.Path, "/")
	if path == "" {
		return 0, fmt.Errorf("%w: %q", ErrEmptySegments, rawURL)
	}
	segment := path[strings.LastIndex(path, "/")+1:]

	id, err := strconv.ParseUint(segment, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNonNumericID, segment)
	}
	return uint32(id), nil
}
