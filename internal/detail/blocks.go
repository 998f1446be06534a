// Package detail renders a resolved entry into the detail view: title,
// meta line, body blocks and the hero image.
package detail

import (
	"html"
	"regexp"
	"strings"

	"github.com/frinky/devlog/internal/content"
)

// EmptyBody replaces an entry body that has no text.
const EmptyBody = "More details coming soon."

// BlockKind is the shape of a body block.
type BlockKind uint8

const (
	Paragraph BlockKind = iota
	List
)

// Block is one paragraph, or one bullet list whose Lines are the items.
type Block struct {
	Kind  BlockKind
	Lines []string
}

var (
	paragraphBreak = regexp.MustCompile(`\n{2,}`)
	bulletMarker   = regexp.MustCompile(`^\s*-\s?`)
)

// Blocks splits free text into blocks on blank lines. A block whose first
// character is a '-' bullet becomes a list; its items are the lines with
// the marker stripped, blanks dropped.
func Blocks(text string) []Block {
	normalized := content.Normalize(text)
	if normalized == "" {
		normalized = EmptyBody
	}

	parts := paragraphBreak.Split(normalized, -1)
	blocks := make([]Block, 0, len(parts))
	for _, part := range parts {
		if strings.HasPrefix(strings.TrimSpace(part), "-") {
			var items []string
			for _, line := range strings.Split(part, "\n") {
				if item := strings.TrimSpace(bulletMarker.ReplaceAllString(line, "")); item != "" {
					items = append(items, item)
				}
			}
			blocks = append(blocks, Block{Kind: List, Lines: items})
			continue
		}
		blocks = append(blocks, Block{Kind: Paragraph, Lines: strings.Split(part, "\n")})
	}
	return blocks
}

// HTML renders blocks as escaped markup: <p> with <br> between lines, or <ul>.
func HTML(blocks []Block) string {
	var b strings.Builder
	for _, block := range blocks {
		switch block.Kind {
		case List:
			b.WriteString("<ul>")
			for _, item := range block.Lines {
				b.WriteString("<li>")
				b.WriteString(html.EscapeString(item))
				b.WriteString("</li>")
			}
			b.WriteString("</ul>")
		default:
			b.WriteString("<p>")
			for i, line := range block.Lines {
				if i > 0 {
					b.WriteString("<br>")
				}
				b.WriteString(html.EscapeString(line))
			}
			b.WriteString("</p>")
		}
	}
	return b.String()
}
