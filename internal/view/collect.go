package view

import (
	"cmp"
	"slices"

	"github.com/dgallion1/inkpost/internal/post"
)

// Published drops drafts, keeping order.
func Published(posts []post.Post) []post.Post {
	out := make([]post.Post, 0, len(posts))
	for _, p := range posts {
		if !p.FrontMatter.Draft {
			out = append(out, p)
		}
	}
	return out
}

// Filter keeps posts matching keep, in order.
func Filter(posts []post.Post, keep func(post.Post) bool) []post.Post {
	var out []post.Post
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// GroupByYear groups date-descending posts into consecutive year buckets.
// Unsorted input can produce the same year twice.
func GroupByYear(posts []post.Post) []post.Archive {
	var archives []post.Archive
	for _, p := range posts {
		entry := post.ArchivePost{
			Date:  p.FrontMatter.Date.Format("01-02"),
			Title: p.FrontMatter.Title,
			Slug:  p.Slug,
		}
		year := p.FrontMatter.Date.Year()
		if n := len(archives); n > 0 && archives[n-1].Year == year {
			archives[n-1].Posts = append(archives[n-1].Posts, entry)
			continue
		}
		archives = append(archives, post.Archive{Year: year, Posts: []post.ArchivePost{entry}})
	}
	return archives
}

// CountTerms counts the terms selected from each post, ordered by count
// descending then name ascending.
func CountTerms(posts []post.Post, terms func(post.Post) []string) []post.TermCount {
	counts := make(map[string]int)
	for _, p := range posts {
		for _, t := range terms(p) {
			counts[t]++
		}
	}

	out := make([]post.TermCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, post.TermCount{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b post.TermCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Categories selects a post's categories.
func Categories(p post.Post) []string { return p.FrontMatter.Categories }

// Tags selects a post's tags.
func Tags(p post.Post) []string { return p.FrontMatter.Tags }

// FindWithNeighbors locates slug and returns its adjacent posts: prev is the
// one before it (newer), next the one after it (older). idx is -1 when
// absent.
func FindWithNeighbors(posts []post.Post, slug string) (idx int, prev, next *post.Post) {
	idx = slices.IndexFunc(posts, func(p post.Post) bool { return p.Slug == slug })
	if idx < 0 {
		return -1, nil, nil
	}
	if idx > 0 {
		p := posts[idx-1]
		prev = &p
	}
	if idx+1 < len(posts) {
		n := posts[idx+1]
		next = &n
	}
	return idx, prev, next
}
