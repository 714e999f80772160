package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/inkpost/internal/parser"
	"github.com/dgallion1/inkpost/internal/post"
)

// DirLoader parses every content file directly inside Dir.
type DirLoader struct {
	Dir     string
	Workers int
}

// Load parses the directory with at most Workers files in flight. Any
// failure aborts the whole load. When two files share a slug the one later
// in directory order wins. The result is sorted newest first; equal dates
// keep directory order.
func (l DirLoader) Load(ctx context.Context) ([]post.Post, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, &parser.ParseError{Kind: parser.KindIO, Path: l.Dir, Err: err}
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !parser.IsContentFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(l.Dir, e.Name()))
	}

	parsed := make([]post.Post, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(l.Workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := parser.ParseFile(path)
			if err != nil {
				return err
			}
			parsed[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load %s: %w", l.Dir, err)
	}

	return sortByDate(dedupeSlugs(parsed)), nil
}

// dedupeSlugs keeps the last post for each slug, at the position of the
// first occurrence.
func dedupeSlugs(posts []post.Post) []post.Post {
	index := make(map[string]int, len(posts))
	out := make([]post.Post, 0, len(posts))
	for _, p := range posts {
		if i, ok := index[p.Slug]; ok {
			out[i] = p
			continue
		}
		index[p.Slug] = len(out)
		out = append(out, p)
	}
	return out
}

func sortByDate(posts []post.Post) []post.Post {
	slices.SortStableFunc(posts, func(a, b post.Post) int {
		return b.FrontMatter.Date.Compare(a.FrontMatter.Date)
	})
	return posts
}
