package web

import (
	"net/http"
)

// handleAdminActivate counts one click of the hidden gesture. The click that
// completes it answers with an HTMX redirect to the admin page.
func (s *Server) handleAdminActivate(w http.ResponseWriter, r *http.Request) {
	if s.gate.Click(sessionID(r)) {
		w.Header().Set("HX-Redirect", "/admin")
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	if !s.gate.IsActive(sessionID(r)) {
		http.NotFound(w, r)
		return
	}

	sum, err := s.service.AdminSummary(r.Context())
	if err != nil {
		http.Error(w, "failed to load summary", http.StatusInternalServerError)
		s.logger.Error("admin summary failed", "error", err)
		return
	}

	l := localizer(r)
	view := adminView{L: l, Summary: sum, OtherLang: otherLang(l), ActiveNav: "admin"}
	if err := s.renderPage(w, view, "base.html", "pages/admin.html"); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}
