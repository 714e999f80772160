// Package view derives page data from the post collection and renders it
// through a template Renderer. Every view sees published posts only.
package view

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/inkpost/internal/markdown"
	"github.com/dgallion1/inkpost/internal/post"
)

// Summary lengths in characters.
const (
	ListSummaryLen   = 200
	SingleSummaryLen = 100
)

// Template names.
const (
	TemplateSingle        = "single.html"
	TemplateIndex         = "index.html"
	TemplateArchives      = "archives.html"
	TemplateCategories    = "categories.html"
	TemplateTags          = "tags.html"
	TemplateCategoryPosts = "category_posts.html"
	TemplateTagPosts      = "tag_posts.html"
)

// Source supplies the post collection.
type Source interface {
	All(ctx context.Context) ([]post.Post, error)
	Refresh(ctx context.Context) error
}

// Renderer executes a named template with data.
type Renderer interface {
	Render(name string, data map[string]any) (string, error)
}

// Config holds page sizes and reading speed.
type Config struct {
	IndexPageSize int
	ListPageSize  int
	ReadSpeed     int
}

// DefaultConfig matches the site's historical layout.
func DefaultConfig() Config {
	return Config{IndexPageSize: 10, ListPageSize: 20, ReadSpeed: 200}
}

// Service is safe for concurrent use.
type Service struct {
	src  Source
	md   *markdown.Renderer
	tmpl Renderer
	cfg  Config
	log  *slog.Logger
}

func NewService(src Source, md *markdown.Renderer, tmpl Renderer, cfg Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{src: src, md: md, tmpl: tmpl, cfg: cfg, log: log}
}

// PublishedPosts returns the collection without drafts, newest first.
func (s *Service) PublishedPosts(ctx context.Context) ([]post.Post, error) {
	all, err := s.src.All(ctx)
	if err != nil {
		return nil, err
	}
	return Published(all), nil
}

// Refresh reloads the collection.
func (s *Service) Refresh(ctx context.Context) error {
	return s.src.Refresh(ctx)
}

// Post builds the detail view of slug. Drafts are not found.
func (s *Service) Post(ctx context.Context, slug string) (post.Single, error) {
	posts, err := s.PublishedPosts(ctx)
	if err != nil {
		return post.Single{}, err
	}
	idx, prev, next := FindWithNeighbors(posts, slug)
	if idx < 0 {
		return post.Single{}, &NotFoundError{Slug: slug}
	}
	p := posts[idx]
	return post.Single{
		FrontMatter: p.FrontMatter,
		Content:     s.md.HTML(p.Content),
		Summary:     s.md.Summary(p.Content, SingleSummaryLen),
		Slug:        p.Slug,
		Count:       p.HanCount(),
		ReadTime:    p.ReadTime(s.cfg.ReadSpeed),
		Outline:     s.md.Outline(p.Content),
		Prev:        prev,
		Next:        next,
	}, nil
}

// Index returns one page of summaries. Pages past the end are empty.
func (s *Service) Index(ctx context.Context, page int) ([]post.Summary, Page, error) {
	posts, err := s.PublishedPosts(ctx)
	if err != nil {
		return nil, Page{}, err
	}
	window := Window(posts, page, s.cfg.IndexPageSize)
	summaries := make([]post.Summary, 0, len(window))
	for _, p := range window {
		summaries = append(summaries, s.summarize(p))
	}
	return summaries, UnclampedPage(len(posts), page, s.cfg.IndexPageSize), nil
}

// Archives returns one page of posts grouped by year.
func (s *Service) Archives(ctx context.Context, page int) ([]post.Archive, Page, error) {
	posts, err := s.PublishedPosts(ctx)
	if err != nil {
		return nil, Page{}, err
	}
	pg := NewPage(len(posts), page, s.cfg.ListPageSize)
	return GroupByYear(Window(posts, pg.Current, s.cfg.ListPageSize)), pg, nil
}

// Categories counts published posts per category.
func (s *Service) Categories(ctx context.Context) ([]post.TermCount, error) {
	return s.terms(ctx, Categories)
}

// Tags counts published posts per tag.
func (s *Service) Tags(ctx context.Context) ([]post.TermCount, error) {
	return s.terms(ctx, Tags)
}

// PostsByCategory returns one clamped page of posts filed under name.
func (s *Service) PostsByCategory(ctx context.Context, name string, page int) ([]post.Post, Page, error) {
	return s.filtered(ctx, page, func(p post.Post) bool { return p.HasCategory(name) })
}

// PostsByTag returns one clamped page of posts carrying name.
func (s *Service) PostsByTag(ctx context.Context, name string, page int) ([]post.Post, Page, error) {
	return s.filtered(ctx, page, func(p post.Post) bool { return p.HasTag(name) })
}

func (s *Service) terms(ctx context.Context, sel func(post.Post) []string) ([]post.TermCount, error) {
	posts, err := s.PublishedPosts(ctx)
	if err != nil {
		return nil, err
	}
	return CountTerms(posts, sel), nil
}

func (s *Service) filtered(ctx context.Context, page int, keep func(post.Post) bool) ([]post.Post, Page, error) {
	posts, err := s.PublishedPosts(ctx)
	if err != nil {
		return nil, Page{}, err
	}
	matched := Filter(posts, keep)
	pg := NewPage(len(matched), page, s.cfg.ListPageSize)
	return Window(matched, pg.Current, s.cfg.ListPageSize), pg, nil
}

func (s *Service) summarize(p post.Post) post.Summary {
	return post.Summary{
		FrontMatter: p.FrontMatter,
		Content:     p.Content,
		Slug:        p.Slug,
		Summary:     s.md.Summary(p.Content, ListSummaryLen),
		Count:       p.HanCount(),
		ReadTime:    p.ReadTime(s.cfg.ReadSpeed),
	}
}

// RenderPost renders the detail page of slug.
func (s *Service) RenderPost(ctx context.Context, slug string) (string, error) {
	single, err := s.Post(ctx, slug)
	if err != nil {
		return "", err
	}
	data := map[string]any{
		"post":        single,
		"description": single.Summary,
	}
	if len(single.FrontMatter.Tags) > 0 {
		data["keywords"] = strings.Join(single.FrontMatter.Tags, ",")
	}
	return s.render(TemplateSingle, data)
}

// RenderIndex renders the home listing.
func (s *Service) RenderIndex(ctx context.Context, page int) (string, error) {
	summaries, pg, err := s.Index(ctx, page)
	if err != nil {
		return "", err
	}
	return s.render(TemplateIndex, withPage(map[string]any{"posts": summaries}, pg))
}

// RenderArchives renders the year-grouped archive.
func (s *Service) RenderArchives(ctx context.Context, page int) (string, error) {
	archives, pg, err := s.Archives(ctx, page)
	if err != nil {
		return "", err
	}
	return s.render(TemplateArchives, withPage(map[string]any{"archives": archives}, pg))
}

// RenderCategories renders the category overview.
func (s *Service) RenderCategories(ctx context.Context) (string, error) {
	categories, err := s.Categories(ctx)
	if err != nil {
		return "", err
	}
	return s.render(TemplateCategories, map[string]any{
		"categories": categories,
		"count":      len(categories),
	})
}

// RenderTags renders the tag overview.
func (s *Service) RenderTags(ctx context.Context) (string, error) {
	tags, err := s.Tags(ctx)
	if err != nil {
		return "", err
	}
	return s.render(TemplateTags, map[string]any{
		"tags":  tags,
		"count": len(tags),
	})
}

// RenderCategoryPosts renders one page of a category.
func (s *Service) RenderCategoryPosts(ctx context.Context, name string, page int) (string, error) {
	posts, pg, err := s.PostsByCategory(ctx, name, page)
	if err != nil {
		return "", err
	}
	return s.render(TemplateCategoryPosts, withPage(map[string]any{
		"posts":         posts,
		"category_name": name,
	}, pg))
}

// RenderTagPosts renders one page of a tag.
func (s *Service) RenderTagPosts(ctx context.Context, name string, page int) (string, error) {
	posts, pg, err := s.PostsByTag(ctx, name, page)
	if err != nil {
		return "", err
	}
	return s.render(TemplateTagPosts, withPage(map[string]any{
		"posts":    posts,
		"tag_name": name,
	}, pg))
}

func (s *Service) render(name string, data map[string]any) (string, error) {
	out, err := s.tmpl.Render(name, data)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return out, nil
}

// withPage adds the page and, past the first page, a title prefix.
func withPage(data map[string]any, pg Page) map[string]any {
	data["page"] = pg
	if pg.Current > 1 {
		data["site_title"] = fmt.Sprintf("第%d页 - ", pg.Current)
	}
	return data
}

// Excerpt is the plain-text summary used outside templates, such as feeds.
func (s *Service) Excerpt(body string, limit int) string {
	return s.md.Summary(body, limit)
}
