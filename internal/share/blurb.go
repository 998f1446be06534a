package share

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/frinky/devlog/internal/content"
)

// DefaultBlurbWords is the description length used for preview cards.
const DefaultBlurbWords = 20

var (
	md     = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
	strict = bluemonday.StrictPolicy()
)

// Blurb reduces a markdown body to at most maxWords words of plain text:
// markup is rendered away, images disappear, link text is kept. A cut
// blurb ends in "...".
func Blurb(body string, maxWords int) string {
	normalized := content.Normalize(body)
	if normalized == "" || maxWords <= 0 {
		return ""
	}

	var rendered bytes.Buffer
	if err := md.Convert([]byte(normalized), &rendered); err != nil {
		rendered.Reset()
		rendered.WriteString(html.EscapeString(normalized))
	}
	plain := html.UnescapeString(strict.Sanitize(rendered.String()))

	words := strings.Fields(plain)
	if len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
