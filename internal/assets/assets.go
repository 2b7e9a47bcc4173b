package assets

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrNotFound is returned when a key does not name a stored asset.
var ErrNotFound = errors.New("asset not found")

// URLPrefix is the path under which catalog sources point at the asset store.
const URLPrefix = "/assets/"

type Store interface {
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
}

// KeyFromSrc maps a catalog image source to a storage key. Sources outside
// URLPrefix are not served by the store.
func KeyFromSrc(src string) (string, bool) {
	if !strings.HasPrefix(src, URLPrefix) {
		return "", false
	}
	key := strings.TrimPrefix(src, URLPrefix)
	return key, key != ""
}
