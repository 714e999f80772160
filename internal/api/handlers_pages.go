package api

import (
	"net/http"
	"path/filepath"

	"github.com/dgallion1/inkpost/internal/friends"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	html, err := s.views.RenderIndex(r.Context(), page)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	writeHTML(w, html)
}

func (s *Server) handleArchives(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	html, err := s.views.RenderArchives(r.Context(), page)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	writeHTML(w, html)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	html, err := s.views.RenderPost(r.Context(), pathParam(r, "slug"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	writeHTML(w, html)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	html, err := s.views.RenderCategories(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	writeHTML(w, html)
}

func (s *Server) handleCategoryPosts(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	html, err := s.views.RenderCategoryPosts(r.Context(), pathParam(r, "category"), page)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	writeHTML(w, html)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	html, err := s.views.RenderTags(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	writeHTML(w, html)
}

func (s *Server) handleTagPosts(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	html, err := s.views.RenderTagPosts(r.Context(), pathParam(r, "tag"), page)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	writeHTML(w, html)
}

func (s *Server) handleFriends(w http.ResponseWriter, r *http.Request) {
	links, err := friends.Load(filepath.Join(s.cfg.StaticDir, "friends.yaml"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	html, err := s.tmpl.Render("friends.html", map[string]any{"friends": links})
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	writeHTML(w, html)
}
