package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nfnt/resize"
)

const (
	DefaultThumbSize = 300
	DefaultCacheSize = 128
	thumbnailQuality = 85
)

// Thumbnailer produces JPEG thumbnails of stored assets and keeps the most
// recently used ones in memory.
type Thumbnailer struct {
	store Store
	size  uint
	cache *lru.Cache[string, []byte]
}

func NewThumbnailer(store Store, size uint, cacheSize int) (*Thumbnailer, error) {
	if size == 0 {
		size = DefaultThumbSize
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create thumbnail cache: %w", err)
	}
	return &Thumbnailer{store: store, size: size, cache: cache}, nil
}

// Thumbnail returns the JPEG thumbnail of key, fitting within size x size.
func (t *Thumbnailer) Thumbnail(ctx context.Context, key string) ([]byte, error) {
	if cached, ok := t.cache.Get(key); ok {
		return cached, nil
	}

	rc, _, err := t.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			slog.Error("failed to close asset", "key", key, "error", cerr)
		}
	}()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := resize.Thumbnail(t.size, t.size, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	out := buf.Bytes()
	t.cache.Add(key, out)
	return out, nil
}
