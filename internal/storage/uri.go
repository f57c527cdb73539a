package storage

import (
	"fmt"
	"path"
	"strings"

	"qap/internal/services"
)

const scheme = "s3://"

// Location identifies an object or prefix within a bucket.
type Location struct {
	Bucket string
	Key    string
}

// String renders the location as an s3:// URI.
func (l Location) String() string {
	if l.Key == "" {
		return scheme + l.Bucket
	}
	return scheme + l.Bucket + "/" + l.Key
}

// Join appends slash-separated elements to the key.
func (l Location) Join(elem ...string) Location {
	parts := append([]string{l.Key}, elem...)
	joined := strings.TrimPrefix(path.Join(parts...), "/")
	return Location{Bucket: l.Bucket, Key: joined}
}

// ParseURI splits an s3:// URI into bucket and key. The scheme is matched
// case-insensitively; anything else is a configuration error.
func ParseURI(uri string) (Location, error) {
	trimmed := strings.TrimSpace(uri)
	if len(trimmed) < len(scheme) || !strings.EqualFold(trimmed[:len(scheme)], scheme) {
		return Location{}, services.Wrap(services.ErrConfiguration, "storage", "parse uri",
			fmt.Sprintf("%q must start with %s", uri, scheme), nil)
	}
	rest := trimmed[len(scheme):]
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Location{}, services.Wrap(services.ErrConfiguration, "storage", "parse uri",
			fmt.Sprintf("%q has no bucket", uri), nil)
	}
	return Location{Bucket: bucket, Key: strings.Trim(key, "/")}, nil
}
