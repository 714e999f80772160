package api

import (
	"net/http"
	"time"

	"github.com/dgallion1/inkpost/internal/feed"
)

func (s *Server) feedSite() feed.Site {
	site := s.cfg.Site
	return feed.Site{
		Title:     site.Title,
		URL:       site.URL,
		RSSCount:  site.RSSCount,
		RSSLength: site.RSSLength,
		Priority:  site.Priority,
	}
}

func (s *Server) handleRSS(w http.ResponseWriter, r *http.Request) {
	posts, err := s.views.PublishedPosts(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	out, err := feed.RSS(s.feedSite(), posts, s.views.Excerpt, time.Now())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	writeCached(w, r, "application/rss+xml; charset=utf-8", out)
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	posts, err := s.views.PublishedPosts(ctx)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	tags, err := s.views.Tags(ctx)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	categories, err := s.views.Categories(ctx)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	out, err := feed.Sitemap(s.feedSite(), posts, tags, categories, time.Now())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	writeCached(w, r, "application/xml; charset=utf-8", out)
}
