package api

import (
	"io"
	"net/http"
)

// handleHealth reports the cache state. posts counts every cached document,
// drafts included.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	if s.content != nil {
		resp["posts_loaded"] = s.content.Loaded()
		resp["posts"] = s.content.Len()
	}
	writeJSON(w, resp)
}

func (s *Server) handleScanStats(w http.ResponseWriter, r *http.Request) {
	if s.metrics == nil {
		jsonError(w, "scan stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]any{"scans": s.metrics.Scans.Summary()})
}

// handleRefresh reloads content from disk. A failed reload keeps serving the
// previous posts.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.views.Refresh(r.Context()); err != nil {
		s.log.Error("refresh failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "Failed to refresh posts: "+err.Error())
		return
	}
	_, _ = io.WriteString(w, "Posts refreshed successfully")
}
