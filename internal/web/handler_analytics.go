package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vbonduro/lookbook/internal/gallery"
	"github.com/vbonduro/lookbook/internal/service"
)

func (s *Server) analytics(w http.ResponseWriter, r *http.Request) (*gallery.Analytics, gallery.ChartMode, bool) {
	mode, err := gallery.ParseChartMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, "invalid chart mode", http.StatusBadRequest)
		return nil, "", false
	}
	a, err := s.service.Analytics(r.Context(), sessionID(r), mode)
	if err != nil {
		http.Error(w, "failed to compute analytics", http.StatusInternalServerError)
		s.logger.Error("compute analytics failed", "error", err)
		return nil, "", false
	}
	return a, mode, true
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	a, mode, ok := s.analytics(w, r)
	if !ok {
		return
	}
	view := analyticsView{L: localizer(r), A: a, Mode: string(mode)}
	if err := s.renderPartial(w, "analytics", view, "partials/analytics.html"); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}

type chartResponse struct {
	Mode   gallery.ChartMode    `json:"mode"`
	Points []gallery.ChartPoint `json:"points"`
}

func (s *Server) handleChartJSON(w http.ResponseWriter, r *http.Request) {
	a, mode, ok := s.analytics(w, r)
	if !ok {
		return
	}
	writeJSON(w, chartResponse{Mode: mode, Points: a.Chart}, s)
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	a, mode, ok := s.analytics(w, r)
	if !ok {
		return
	}

	title := localizer(r).T("analytics.chart.rating")
	if mode == gallery.ChartByStyle {
		title = localizer(r).T("analytics.chart.style")
	}

	var buf bytes.Buffer
	if err := renderChartPNG(&buf, title, a.Chart); err != nil {
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		s.logger.Error("render chart failed", "mode", mode, "error", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("write chart failed", "error", err)
	}
}

func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	l := localizer(r)
	view := insightView{L: l}

	text, err := s.service.Insight(r.Context(), sessionID(r), l.Lang())
	switch {
	case errors.Is(err, service.ErrInsightsLocked):
		view.Locked = true
	case err != nil:
		view.Failed = true
		s.logger.Error("insight failed", "error", err)
	default:
		view.Text = text
	}

	if err := s.renderPartial(w, "insight", view, "partials/insight.html"); err != nil {
		s.logger.Error("render partial failed", "error", err)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.service.State(r.Context(), sessionID(r))
	if err != nil {
		http.Error(w, "failed to load state", http.StatusInternalServerError)
		s.logger.Error("load state failed", "error", err)
		return
	}
	writeJSON(w, st, s)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	a, err := s.service.Analytics(r.Context(), sid, gallery.ChartByRating)
	if err != nil {
		http.Error(w, "failed to compute analytics", http.StatusInternalServerError)
		s.logger.Error("compute analytics failed", "error", err)
		return
	}
	// The upgrader has already answered the request when this fails.
	if err := s.hub.ServeWS(w, r, sid, a); err != nil {
		s.logger.Warn("live connection failed", "session_id", sid, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, v any, s *Server) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode json failed", "error", err)
	}
}
