// Package slug turns heading text into anchor ids.
package slug

import (
	"strings"

	"github.com/mozillazg/go-pinyin"
)

const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normal style: readings without tone marks.
var args = pinyin.NewArgs()

// Tokens splits text into anchor tokens. Han characters become their
// tone-free pinyin reading, ASCII punctuation is dropped and every other
// rune is kept as a single-rune token.
func Tokens(text string) []string {
	tokens := make([]string, 0, len(text))
	for _, r := range text {
		if py := pinyin.SinglePinyin(r, args); len(py) > 0 && py[0] != "" {
			tokens = append(tokens, py[0])
			continue
		}
		if r < 0x80 && strings.ContainsRune(asciiPunct, r) {
			continue
		}
		tokens = append(tokens, string(r))
	}
	return tokens
}

// Anchor joins the tokens of text with "-". Repeated headings produce
// repeated anchors; callers do not de-duplicate them.
func Anchor(text string) string {
	return strings.Join(Tokens(text), "-")
}
