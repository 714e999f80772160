package feed

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/inkpost/internal/post"
)

var cst = time.FixedZone("", 8*3600)

func feedPosts() []post.Post {
	return []post.Post{
		{Slug: "newer", Content: "newer body", FrontMatter: post.FrontMatter{Title: "Newer & better", Date: time.Date(2024, 3, 9, 20, 0, 0, 0, cst)}},
		{Slug: "older", Content: "older body", FrontMatter: post.FrontMatter{Title: "Older", Date: time.Date(2023, 1, 2, 8, 0, 0, 0, cst)}},
	}
}

func upper(body string, limit int) string {
	return strings.ToUpper(body)[:min(limit, len(body))]
}

type parsedRSS struct {
	Channel struct {
		Title         string `xml:"title"`
		LastBuildDate string `xml:"lastBuildDate"`
		Items         []struct {
			Title       string `xml:"title"`
			Link        string `xml:"link"`
			PubDate     string `xml:"pubDate"`
			GUID        string `xml:"guid"`
			Description string `xml:"description"`
		} `xml:"item"`
	} `xml:"channel"`
}

func TestRSS(t *testing.T) {
	site := Site{Title: "Blog", URL: "http://example.com/", RSSLength: 5}
	out, err := RSS(site, feedPosts(), upper, time.Now())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), xml.Header))
	assert.Contains(t, string(out), `xmlns:atom="http://www.w3.org/2005/Atom"`)
	assert.Contains(t, string(out), `<atom:link href="http://example.com/index.xml" rel="self" type="application/rss+xml"></atom:link>`)

	var doc parsedRSS
	require.NoError(t, xml.Unmarshal(out, &doc))
	assert.Equal(t, "Blog", doc.Channel.Title)
	assert.Equal(t, "Sat, 09 Mar 2024 20:00:00 +0800", doc.Channel.LastBuildDate)
	require.Len(t, doc.Channel.Items, 2)

	item := doc.Channel.Items[0]
	assert.Equal(t, "Newer & better", item.Title)
	assert.Equal(t, "http://example.com/post/newer/", item.Link)
	assert.Equal(t, item.Link, item.GUID)
	assert.Equal(t, "NEWER", item.Description)
}

func TestRSSCountLimit(t *testing.T) {
	out, err := RSS(Site{URL: "http://x", RSSCount: 1, RSSLength: 100}, feedPosts(), upper, time.Now())
	require.NoError(t, err)

	var doc parsedRSS
	require.NoError(t, xml.Unmarshal(out, &doc))
	require.Len(t, doc.Channel.Items, 1)
	assert.Equal(t, "Newer & better", doc.Channel.Items[0].Title)
}

func TestRSSEmptyUsesNow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out, err := RSS(Site{URL: "http://x"}, nil, upper, now)
	require.NoError(t, err)

	var doc parsedRSS
	require.NoError(t, xml.Unmarshal(out, &doc))
	assert.Empty(t, doc.Channel.Items)
	assert.Equal(t, now.Format(time.RFC1123Z), doc.Channel.LastBuildDate)
}

func TestSitemap(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	tags := []post.TermCount{{Name: "go", Count: 2}}
	cats := []post.TermCount{{Name: "编程", Count: 1}}

	out, err := Sitemap(Site{URL: "http://example.com", Priority: "0.5"}, feedPosts(), tags, cats, now)
	require.NoError(t, err)

	var set struct {
		URLs []sitemapURL `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(out, &set))
	require.Len(t, set.URLs, 5)

	assert.Equal(t, sitemapURL{Loc: "http://example.com/", LastMod: "2025-05-01T12:00:00Z", Priority: "0.5"}, set.URLs[0])
	assert.Equal(t, "http://example.com/post/newer/", set.URLs[1].Loc)
	assert.Equal(t, "2024-03-09T20:00:00+08:00", set.URLs[1].LastMod)
	assert.Equal(t, "http://example.com/tags/go/", set.URLs[3].Loc)
	assert.Equal(t, "http://example.com/categories/%E7%BC%96%E7%A8%8B/", set.URLs[4].Loc)
	assert.Contains(t, string(out), `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
}
