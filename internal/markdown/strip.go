package markdown

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Summary renders body to HTML, strips the markup and returns the first
// limit characters of the remaining text. Lines are trimmed, blank lines
// dropped and the rest joined with single spaces. Any failure yields "".
func (r *Renderer) Summary(body string, limit int) string {
	rendered, err := r.plainHTML(body)
	if err != nil {
		r.log.Warn("summary render failed", "error", err)
		return ""
	}
	text, err := StripTags(rendered)
	if err != nil {
		r.log.Warn("summary strip failed", "error", err)
		return ""
	}
	return truncateRunes(collapseLines(text), limit)
}

// StripTags returns the text content of an HTML fragment with entities
// decoded. Script and style contents are skipped.
func StripTags(fragment string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var buf strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", err
			}
			return buf.String(), nil
		case html.StartTagToken:
			if name, _ := z.TagName(); isRawTextTag(string(name)) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isRawTextTag(string(name)) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				buf.Write(z.Text())
			}
		}
	}
}

func isRawTextTag(tag string) bool {
	return tag == "script" || tag == "style"
}

func collapseLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, " ")
}

// truncateRunes keeps the first n characters, never splitting a multi-byte rune.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
