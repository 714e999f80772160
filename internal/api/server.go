package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/inkpost/internal/config"
	"github.com/dgallion1/inkpost/internal/metrics"
	"github.com/dgallion1/inkpost/internal/view"
)

// ContentStatus reports the state of the post cache.
type ContentStatus interface {
	Loaded() bool
	Len() int
}

// Server is the HTTP front end of the blog.
type Server struct {
	router  chi.Router
	views   *view.Service
	content ContentStatus
	tmpl    view.Renderer
	metrics *metrics.Metrics
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(views *view.Service, content ContentStatus, tmpl view.Renderer, m *metrics.Metrics, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		views:   views,
		content: content,
		tmpl:    tmpl,
		metrics: m,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	var obs RequestObserver
	if s.metrics != nil {
		obs = s.metrics
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log, obs))

	// Ops.
	r.Get("/health", s.handleHealth)
	r.Get("/api/stats/scans", s.handleScanStats)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	// Pages.
	r.Get("/", s.handleIndex)
	r.Get("/index.html", s.handleIndex)
	r.Get("/page/{page}/", s.handleIndex)

	r.Get("/post/", s.handleArchives)
	r.Get("/post/page/{page}/", s.handleArchives)
	r.Get("/post/{slug}/", s.handlePost)
	r.Get("/post/{slug}/index.html", s.handlePost)

	r.Get("/categories/", s.handleCategories)
	r.Get("/categories/{category}/", s.handleCategoryPosts)
	r.Get("/categories/{category}/page/{page}/", s.handleCategoryPosts)

	r.Get("/tags/", s.handleTags)
	r.Get("/tags/{tag}/", s.handleTagPosts)
	r.Get("/tags/{tag}/page/{page}/", s.handleTagPosts)

	r.Get("/friends/", s.handleFriends)

	// Feeds.
	r.Get("/index.xml", s.handleRSS)
	r.Get("/sitemap.xml", s.handleSitemap)

	// Refresh, guarded when a key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.RefreshAPIKey != "" {
			r.Use(AuthMiddleware(s.cfg.RefreshAPIKey, s.log))
		}
		r.Get("/refresh/posts/", s.handleRefresh)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))

	s.router = r
}
