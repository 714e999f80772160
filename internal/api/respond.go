package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/inkpost/internal/view"
)

// notFoundPage is where missing posts are redirected.
const notFoundPage = "/error/404.html"

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, body)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// renderError redirects missing posts and reports everything else as 500.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *view.NotFoundError
	if errors.As(err, &nf) {
		http.Redirect(w, r, notFoundPage+"?url="+url.QueryEscape(nf.Slug), http.StatusFound)
		return
	}
	s.log.Error("request failed", "path", r.URL.Path, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// pageParam reads the optional {page} segment. Absent means page 1; a
// non-numeric or non-positive value is rejected.
func pageParam(r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "page")
	if raw == "" {
		return 1, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// pathParam returns a decoded route parameter.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
