// Package feed builds the RSS 2.0 feed and the sitemap from published posts.
package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dgallion1/inkpost/internal/post"
)

// Site carries the settings both documents need.
type Site struct {
	Title     string
	URL       string // no trailing slash
	RSSCount  int    // items in the feed; <= 0 means all
	RSSLength int    // description length in characters
	Priority  string
}

// Describer produces a plain-text excerpt of a markdown body.
type Describer func(body string, limit int) string

const (
	atomNS    = "http://www.w3.org/2005/Atom"
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
)

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Generator     string    `xml:"generator"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
}

// PostURL is the public address of a post.
func PostURL(base, slug string) string {
	return fmt.Sprintf("%s/post/%s/", strings.TrimRight(base, "/"), url.PathEscape(slug))
}

// RSS renders posts, newest first, as an RSS 2.0 document. The build date
// is the newest post's date, or now when there are no posts.
func RSS(site Site, posts []post.Post, describe Describer, now time.Time) ([]byte, error) {
	if site.RSSCount > 0 && len(posts) > site.RSSCount {
		posts = posts[:site.RSSCount]
	}

	built := now
	if len(posts) > 0 {
		built = posts[0].FrontMatter.Date
	}

	base := strings.TrimRight(site.URL, "/")
	doc := rssDoc{
		Version: "2.0",
		AtomNS:  atomNS,
		Channel: rssChannel{
			Title:         site.Title,
			Link:          base,
			Description:   "Recent content on " + site.Title,
			Generator:     "inkpost",
			Language:      "zh-cn",
			LastBuildDate: built.Format(time.RFC1123Z),
			AtomLink: atomLink{
				Href: base + "/index.xml",
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: make([]rssItem, 0, len(posts)),
		},
	}
	for _, p := range posts {
		link := PostURL(base, p.Slug)
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:       p.FrontMatter.Title,
			Link:        link,
			PubDate:     p.FrontMatter.Date.Format(time.RFC1123Z),
			GUID:        link,
			Description: describe(p.Content, site.RSSLength),
		})
	}
	return encode(doc)
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod"`
	Priority string `xml:"priority"`
}

// Sitemap lists the home page, every post, and every tag and category page.
// Pages without a date of their own use now as lastmod.
func Sitemap(site Site, posts []post.Post, tags, categories []post.TermCount, now time.Time) ([]byte, error) {
	base := strings.TrimRight(site.URL, "/")
	stamp := now.Format(time.RFC3339)

	set := urlSet{NS: sitemapNS}
	add := func(loc, lastmod string) {
		set.URLs = append(set.URLs, sitemapURL{Loc: loc, LastMod: lastmod, Priority: site.Priority})
	}

	add(base+"/", stamp)
	for _, p := range posts {
		add(PostURL(base, p.Slug), p.FrontMatter.Date.Format(time.RFC3339))
	}
	for _, t := range tags {
		add(fmt.Sprintf("%s/tags/%s/", base, url.PathEscape(t.Name)), stamp)
	}
	for _, c := range categories {
		add(fmt.Sprintf("%s/categories/%s/", base, url.PathEscape(c.Name)), stamp)
	}
	return encode(set)
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode xml: %w", err)
	}
	return buf.Bytes(), nil
}
