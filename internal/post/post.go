// Package post defines the content model shared by the parser, cache and views.
package post

import "time"

// FrontMatter is the YAML header of a content file.
type FrontMatter struct {
	Title      string    `yaml:"title" json:"title"`
	Date       time.Time `yaml:"-" json:"date"` // keeps the offset written in the file
	Draft      bool      `yaml:"draft" json:"draft"`
	Categories []string  `yaml:"categories" json:"categories,omitempty"`
	Tags       []string  `yaml:"tags" json:"tags,omitempty"`
}

// Post is one parsed content file. Posts are immutable once loaded.
type Post struct {
	FrontMatter FrontMatter `json:"front_matter"`
	Content     string      `json:"content"` // raw markdown body
	Slug        string      `json:"slug"`    // filename stem, public URL key
}

// HasCategory reports whether the post is filed under name.
func (p Post) HasCategory(name string) bool {
	return contains(p.FrontMatter.Categories, name)
}

// HasTag reports whether the post carries tag name.
func (p Post) HasTag(name string) bool {
	return contains(p.FrontMatter.Tags, name)
}

// HanCount counts CJK unified ideographs (U+4E00..U+9FFF) in the body.
func (p Post) HanCount() int {
	n := 0
	for _, r := range p.Content {
		if r >= 0x4e00 && r <= 0x9fff {
			n++
		}
	}
	return n
}

// ReadTime estimates reading minutes at speed characters per minute.
// The result is never below one minute.
func (p Post) ReadTime(speed int) int {
	if speed <= 0 {
		return 1
	}
	if m := p.HanCount() / speed; m > 0 {
		return m
	}
	return 1
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// OutlineEntry is one heading of a rendered post.
type OutlineEntry struct {
	Level  int    `json:"level"`
	Text   string `json:"text"`
	Anchor string `json:"anchor"`
}

// Summary is a list item on index, category and tag pages.
type Summary struct {
	FrontMatter FrontMatter `json:"front_matter"`
	Content     string      `json:"content"`
	Slug        string      `json:"slug"`
	Summary     string      `json:"summary"`
	Count       int         `json:"count"`
	ReadTime    int         `json:"read_time"`
}

// Single is the fully rendered detail view of one post.
type Single struct {
	FrontMatter FrontMatter    `json:"front_matter"`
	Content     string         `json:"content"` // rendered HTML
	Summary     string         `json:"summary"`
	Slug        string         `json:"slug"`
	Count       int            `json:"count"`
	ReadTime    int            `json:"read_time"`
	Outline     []OutlineEntry `json:"toc"`
	Prev        *Post          `json:"prev,omitempty"` // newer neighbour
	Next        *Post          `json:"next,omitempty"` // older neighbour
}

// Archive groups posts published in the same year.
type Archive struct {
	Year  int           `json:"year"`
	Posts []ArchivePost `json:"posts"`
}

// ArchivePost is one archive line.
type ArchivePost struct {
	Date  string `json:"date"` // MM-DD
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// TermCount is a category or tag with the number of posts using it.
type TermCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
