package view

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/inkpost/internal/markdown"
	"github.com/dgallion1/inkpost/internal/post"
)

type staticSource struct {
	posts     []post.Post
	err       error
	refreshed int
}

func (s *staticSource) All(context.Context) ([]post.Post, error) { return s.posts, s.err }

func (s *staticSource) Refresh(context.Context) error {
	s.refreshed++
	return s.err
}

type recordingRenderer struct {
	name string
	data map[string]any
	err  error
}

func (r *recordingRenderer) Render(name string, data map[string]any) (string, error) {
	r.name, r.data = name, data
	if r.err != nil {
		return "", r.err
	}
	return "rendered " + name, nil
}

// datedPosts returns n published posts, newest first, one per day.
func datedPosts(n int) []post.Post {
	out := make([]post.Post, n)
	for i := range n {
		out[i] = mkPost(fmt.Sprintf("p%02d", i+1), fmt.Sprintf("2024-01-%02d", 28-i), false, nil, nil)
	}
	return out
}

func newTestService(posts []post.Post) (*Service, *recordingRenderer) {
	r := &recordingRenderer{}
	return NewService(&staticSource{posts: posts}, markdown.New(nil), r, DefaultConfig(), nil), r
}

func TestIndexPagination(t *testing.T) {
	svc, _ := newTestService(datedPosts(25))
	ctx := context.Background()

	items, pg, err := svc.Index(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 10)
	assert.Equal(t, "p01", items[0].Slug)
	assert.Equal(t, 3, pg.Count)

	items, pg, err = svc.Index(ctx, 3)
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, "p21", items[0].Slug)
	assert.Equal(t, "p25", items[4].Slug)
	require.NotNil(t, pg.Prev)
	assert.Equal(t, 2, *pg.Prev)
	assert.Nil(t, pg.Next)
}

func TestIndexOutOfRangeIsEmpty(t *testing.T) {
	svc, r := newTestService(datedPosts(25))

	items, pg, err := svc.Index(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 4, pg.Current)

	_, err = svc.RenderIndex(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "第4页 - ", r.data["site_title"])
}

func TestIndexSummaryFields(t *testing.T) {
	p := mkPost("cn", "2024-01-01", false, nil, nil)
	p.Content = "# 标题\n\n中文内容"
	svc, _ := newTestService([]post.Post{p})

	items, _, err := svc.Index(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "标题 中文内容", items[0].Summary)
	assert.Equal(t, 6, items[0].Count)
	assert.Equal(t, 1, items[0].ReadTime)
}

func TestCategoryPageClamped(t *testing.T) {
	var posts []post.Post
	for i := range 25 {
		posts = append(posts, mkPost(fmt.Sprintf("c%02d", i), "2024-01-01", false, []string{"go"}, nil))
	}
	svc, r := newTestService(posts)

	items, pg, err := svc.PostsByCategory(context.Background(), "go", 9)
	require.NoError(t, err)
	assert.Equal(t, 2, pg.Current)
	assert.Len(t, items, 5)

	_, err = svc.RenderCategoryPosts(context.Background(), "go", 9)
	require.NoError(t, err)
	assert.Equal(t, TemplateCategoryPosts, r.name)
	assert.Equal(t, "go", r.data["category_name"])
	assert.Equal(t, "第2页 - ", r.data["site_title"])
}

func TestTagPostsFilter(t *testing.T) {
	posts := []post.Post{
		mkPost("a", "2024-03-01", false, nil, []string{"rust", "go"}),
		mkPost("b", "2024-02-01", false, nil, []string{"python"}),
		mkPost("c", "2024-01-01", true, nil, []string{"go"}),
	}
	svc, r := newTestService(posts)

	items, pg, err := svc.PostsByTag(context.Background(), "go", 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Slug)
	assert.Equal(t, 1, pg.Count)

	_, err = svc.RenderTagPosts(context.Background(), "go", 1)
	require.NoError(t, err)
	assert.Equal(t, "go", r.data["tag_name"])
	assert.NotContains(t, r.data, "site_title")
}

func TestDraftsHiddenEverywhere(t *testing.T) {
	posts := []post.Post{
		mkPost("pub", "2024-02-01", false, []string{"life"}, []string{"t1"}),
		mkPost("draft", "2024-01-01", true, []string{"secret"}, []string{"t2"}),
	}
	svc, _ := newTestService(posts)
	ctx := context.Background()

	items, _, err := svc.Index(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	archives, _, err := svc.Archives(ctx, 1)
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Len(t, archives[0].Posts, 1)

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []post.TermCount{{Name: "life", Count: 1}}, cats)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []post.TermCount{{Name: "t1", Count: 1}}, tags)

	_, err = svc.Post(ctx, "draft")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostDetail(t *testing.T) {
	posts := datedPosts(3)
	posts[1].Content = "## 安装\n\ntext\n"
	posts[1].FrontMatter.Tags = []string{"go", "web"}
	svc, r := newTestService(posts)

	single, err := svc.Post(context.Background(), "p02")
	require.NoError(t, err)
	assert.Contains(t, single.Content, `<h2 id="an-zhuang">安装</h2>`)
	assert.Equal(t, []post.OutlineEntry{{Level: 2, Text: "安装", Anchor: "an-zhuang"}}, single.Outline)
	require.NotNil(t, single.Prev)
	assert.Equal(t, "p01", single.Prev.Slug)
	require.NotNil(t, single.Next)
	assert.Equal(t, "p03", single.Next.Slug)

	_, err = svc.RenderPost(context.Background(), "p02")
	require.NoError(t, err)
	assert.Equal(t, TemplateSingle, r.name)
	assert.Equal(t, "go,web", r.data["keywords"])
	assert.Equal(t, "安装 text", r.data["description"])
}

func TestRenderPostNotFound(t *testing.T) {
	svc, _ := newTestService(datedPosts(2))

	_, err := svc.RenderPost(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nope", nf.Slug)
}

func TestRenderCategoriesContext(t *testing.T) {
	posts := []post.Post{
		mkPost("a", "2024-01-03", false, []string{"tech"}, nil),
		mkPost("b", "2024-01-02", false, []string{"life", "tech"}, nil),
	}
	svc, r := newTestService(posts)

	out, err := svc.RenderCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rendered categories.html", out)
	assert.Equal(t, 2, r.data["count"])
	assert.Equal(t, []post.TermCount{{Name: "tech", Count: 2}, {Name: "life", Count: 1}}, r.data["categories"])
}

func TestArchivesClamped(t *testing.T) {
	svc, r := newTestService(datedPosts(25))

	archives, pg, err := svc.Archives(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, pg.Current)
	require.Len(t, archives, 1)
	assert.Len(t, archives[0].Posts, 5)

	_, err = svc.RenderArchives(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, TemplateArchives, r.name)
	assert.NotContains(t, r.data, "site_title")
}

func TestSourceErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&staticSource{err: boom}, markdown.New(nil), &recordingRenderer{}, DefaultConfig(), nil)

	_, err := svc.RenderIndex(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	_, err = svc.Categories(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.Refresh(context.Background()), boom)
}

func TestRenderErrorWrapped(t *testing.T) {
	r := &recordingRenderer{err: errors.New("bad template")}
	svc := NewService(&staticSource{posts: datedPosts(1)}, markdown.New(nil), r, DefaultConfig(), nil)

	_, err := svc.RenderTags(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render tags.html")
}
