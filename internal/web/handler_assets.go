package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/vbonduro/lookbook/internal/assets"
	"github.com/vbonduro/lookbook/internal/service"
)

const assetCacheControl = "public, max-age=3600"

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("path")
	reader, mimeType, err := s.assets.Get(r.Context(), key)
	if err != nil {
		// Traversal attempts get the same answer as missing files.
		if !errors.Is(err, assets.ErrNotFound) {
			s.logger.Warn("asset lookup failed", "key", key, "error", err)
		}
		http.NotFound(w, r)
		return
	}
	defer closeWithLog(reader, "asset reader", s.logger)

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", assetCacheControl)
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write asset failed", "key", key, "error", err)
	}
}

func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	img, err := s.service.Image(r.PathValue("id"))
	if errors.Is(err, service.ErrImageNotFound) {
		http.NotFound(w, r)
		return
	}

	key, ok := assets.KeyFromSrc(img.Src)
	if !ok {
		// Images hosted elsewhere are not thumbnailed.
		http.Redirect(w, r, img.Src, http.StatusFound)
		return
	}

	data, err := s.thumbs.Thumbnail(r.Context(), key)
	if errors.Is(err, assets.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to create thumbnail", http.StatusInternalServerError)
		s.logger.Error("thumbnail failed", "image_id", img.ID, "error", err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", assetCacheControl)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("write thumbnail failed", "image_id", img.ID, "error", err)
	}
}
