// Package parser reads content files into posts.
package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/dgallion1/inkpost/internal/post"
)

// ContentExt is the extension of content files. Matching is case-insensitive.
const ContentExt = ".md"

// DateLayout is the front matter date format, e.g. 2024-03-01T20:15:00+0800.
const DateLayout = "2006-01-02T15:04:05-0700"

const delimiter = "---"

var (
	ErrIO       = errors.New("content io")
	ErrMetadata = errors.New("content metadata")
)

// Kind classifies a ParseError.
type Kind int

const (
	KindIO Kind = iota + 1
	KindMetadata
)

// ParseError reports a content file that could not be loaded.
type ParseError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	what := "read"
	if e.Kind == KindMetadata {
		what = "decode front matter"
	}
	return fmt.Sprintf("%s %s: %v", what, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrIO and ErrMetadata.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrMetadata:
		return e.Kind == KindMetadata
	}
	return false
}

// IsContentFile checks if a file name has the content extension.
func IsContentFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ContentExt)
}

// SlugFor returns the public slug of a content file: its name without extension.
func SlugFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseFile reads and parses one content file.
func ParseFile(path string) (post.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return post.Post{}, &ParseError{Kind: KindIO, Path: path, Err: err}
	}
	return Parse(string(data), path)
}

// Parse splits content into front matter and body. The text between the
// first and second "---" is the YAML header and everything after the second
// delimiter is the body. Content with fewer than two delimiters has an empty
// header and fails validation.
func Parse(content, path string) (post.Post, error) {
	parts := strings.SplitN(content, delimiter, 3)

	var header, body string
	if len(parts) > 1 {
		header = parts[1]
	}
	if len(parts) > 2 {
		body = parts[2]
	}

	fm, err := decodeFrontMatter(header)
	if err != nil {
		return post.Post{}, &ParseError{Kind: KindMetadata, Path: path, Err: err}
	}

	return post.Post{
		FrontMatter: fm,
		Content:     body,
		Slug:        SlugFor(path),
	}, nil
}

type rawFrontMatter struct {
	Title      string   `yaml:"title"`
	Date       string   `yaml:"date"`
	Draft      bool     `yaml:"draft"`
	Categories []string `yaml:"categories"`
	Tags       []string `yaml:"tags"`
}

func decodeFrontMatter(header string) (post.FrontMatter, error) {
	var raw rawFrontMatter
	if err := yaml.Unmarshal([]byte(header), &raw); err != nil {
		return post.FrontMatter{}, fmt.Errorf("yaml: %w", err)
	}

	fm := post.FrontMatter{
		Title:      raw.Title,
		Draft:      raw.Draft,
		Categories: raw.Categories,
		Tags:       raw.Tags,
	}
	if raw.Date != "" {
		date, err := ParseDate(raw.Date)
		if err != nil {
			return post.FrontMatter{}, err
		}
		fm.Date = date
	}

	if err := validation.ValidateStruct(&fm,
		validation.Field(&fm.Title, validation.Required),
		validation.Field(&fm.Date, validation.Required),
	); err != nil {
		return post.FrontMatter{}, err
	}
	return fm, nil
}

// ParseDate parses a front matter date. The numeric offset is kept as a
// fixed zone. RFC 3339 is accepted as a fallback.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want format %s", s, DateLayout)
	}
	return t, nil
}
