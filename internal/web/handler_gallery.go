package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vbonduro/lookbook/internal/domain"
	"github.com/vbonduro/lookbook/internal/gallery"
	"github.com/vbonduro/lookbook/internal/service"
	"github.com/vbonduro/lookbook/internal/tilt"
)

var galleryFiles = []string{
	"base.html",
	"pages/gallery.html",
	"partials/grid.html",
	"partials/card.html",
	"partials/comments.html",
	"partials/analytics.html",
}

var gridFiles = []string{
	"partials/grid.html",
	"partials/card.html",
	"partials/comments.html",
}

func (s *Server) galleryPage(w http.ResponseWriter, r *http.Request) (*service.GalleryPage, bool) {
	q := r.URL.Query()
	filter, err := gallery.ParseFilter(q.Get("setting"), q.Get("hotness"))
	if err != nil {
		http.Error(w, "invalid filter", http.StatusBadRequest)
		return nil, false
	}

	page, err := s.service.Page(r.Context(), sessionID(r), filter, tilt.CapabilitiesFromRequest(r))
	if err != nil {
		http.Error(w, "failed to load gallery", http.StatusInternalServerError)
		s.logger.Error("load gallery failed", "error", err)
		return nil, false
	}
	return page, true
}

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	page, ok := s.galleryPage(w, r)
	if !ok {
		return
	}
	view := newGalleryView(localizer(r), page)

	// HTMX filter changes only swap the grid.
	if r.Header.Get("HX-Request") == "true" {
		if err := s.renderPartial(w, "grid", view, gridFiles...); err != nil {
			s.logger.Error("render partial failed", "error", err)
		}
		return
	}

	if err := s.renderPage(w, view, galleryFiles...); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) handleGalleryGrid(w http.ResponseWriter, r *http.Request) {
	page, ok := s.galleryPage(w, r)
	if !ok {
		return
	}
	if err := s.renderPartial(w, "grid", newGalleryView(localizer(r), page), gridFiles...); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	value, err := strconv.Atoi(strings.TrimSpace(r.FormValue("value")))
	if err != nil {
		http.Error(w, "invalid rating", http.StatusBadRequest)
		return
	}

	res, err := s.service.Rate(r.Context(), sessionID(r), r.PathValue("id"), value)
	if errors.Is(err, service.ErrImageNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to rate image", http.StatusInternalServerError)
		s.logger.Error("rate image failed", "image_id", r.PathValue("id"), "error", err)
		return
	}

	if res.Accepted {
		w.Header().Set("HX-Trigger", "analytics-changed")
	}
	if err := s.renderPartial(w, "card", newCardView(localizer(r), res.Card), gridFiles...); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}

const (
	maxCommentLen    = 1000
	maxAuthorLen     = 80
	maxOutfitLinkLen = 2048
)

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	imageID := r.PathValue("id")
	comments, err := s.service.Comments(r.Context(), sessionID(r), imageID)
	if errors.Is(err, service.ErrImageNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to list comments", http.StatusInternalServerError)
		s.logger.Error("list comments failed", "image_id", imageID, "error", err)
		return
	}
	s.renderComments(w, r, imageID, comments)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	imageID := r.PathValue("id")
	text := r.FormValue("text")
	author := r.FormValue("author")
	link := r.FormValue("outfit_link")

	// Oversized input is treated like any other rejected comment: the thread is
	// re-rendered unchanged.
	if utf8.RuneCountInString(text) <= maxCommentLen &&
		utf8.RuneCountInString(author) <= maxAuthorLen &&
		len(link) <= maxOutfitLinkLen {
		_, _, err := s.service.AddComment(r.Context(), sessionID(r), imageID, text, author, link)
		if errors.Is(err, service.ErrImageNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			http.Error(w, "failed to add comment", http.StatusInternalServerError)
			s.logger.Error("add comment failed", "image_id", imageID, "error", err)
			return
		}
	}

	comments, err := s.service.Comments(r.Context(), sessionID(r), imageID)
	if errors.Is(err, service.ErrImageNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to list comments", http.StatusInternalServerError)
		s.logger.Error("list comments failed", "image_id", imageID, "error", err)
		return
	}
	s.renderComments(w, r, imageID, comments)
}

func (s *Server) renderComments(w http.ResponseWriter, r *http.Request, imageID string, comments []domain.Comment) {
	if err := s.renderPartial(w, "comments", newCommentsView(localizer(r), imageID, comments), "partials/comments.html"); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}
