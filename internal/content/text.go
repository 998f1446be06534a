package content

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// dateLayouts are the display formats accepted for ordering and DaysAgo.
var dateLayouts = []string{"02 Jan 2006", "2 Jan 2006", "2006-01-02", "Jan 2, 2006", time.RFC3339}

// Normalize trims leading and trailing blank lines and removes the
// indentation shared by every non-blank line.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	pad := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if pad < 0 || n < pad {
			pad = n
		}
	}
	if pad <= 0 {
		return strings.Join(lines, "\n")
	}
	for i, l := range lines {
		if len(l) >= pad {
			lines[i] = l[pad:]
		} else {
			lines[i] = strings.TrimLeft(l, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

// TitleFromSlug turns "bang-shoot" into "Bang Shoot".
func TitleFromSlug(slug string) string {
	words := strings.ReplaceAll(strings.ReplaceAll(slug, "-", " "), "_", " ")
	return cases.Title(language.English).String(words)
}

// ParseDate parses a display date in any of the accepted layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysAgo renders the age of a display date relative to now, or "" when
// the date cannot be parsed.
func DaysAgo(date string, now time.Time) string {
	t, ok := ParseDate(date)
	if !ok {
		return ""
	}
	days := int(now.Sub(t).Hours() / 24)
	return fmt.Sprintf("%d days ago", days)
}

// FeedMeta is the meta column of the posts feed: the explicit meta, else
// the age of the post.
func FeedMeta(meta, date string, now time.Time) string {
	if meta != "" {
		return meta
	}
	return DaysAgo(date, now)
}
