package model

import (
	"fmt"
	"strings"
)

// Kind identifies which collection an Entry belongs to.
type Kind string

const (
	KindGame Kind = "game"
	KindPost Kind = "post"
)

// Kinds lists every known kind in display order.
var Kinds = []Kind{KindGame, KindPost}

// ParseKind validates s as a Kind. Matching is exact; fragments are lower case.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindGame, KindPost:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown entry kind %q", s)
}

// Plural is the directory and section name for the kind ("games", "posts").
func (k Kind) Plural() string {
	return string(k) + "s"
}

// Entry is a single game or post. Slug is unique within its Kind.
type Entry struct {
	Kind        Kind   `json:"kind"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Date        string `json:"date,omitempty"`
	Content     string `json:"content,omitempty"`
	Image       string `json:"image,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	Meta        string `json:"meta,omitempty"`
	Featured    bool   `json:"featured,omitempty"`
	SourcePath  string `json:"-"`
}

// MetaLine is the secondary line shown under a title: the date when present,
// otherwise the freeform meta override.
func (e *Entry) MetaLine() string {
	if d := strings.TrimSpace(e.Date); d != "" {
		return d
	}
	return strings.TrimSpace(e.Meta)
}

// Experience is one row of the experience timeline.
type Experience struct {
	Date  string `yaml:"date" json:"date"`
	Title string `yaml:"title" json:"title"`
	Meta  string `yaml:"meta" json:"meta,omitempty"`
}

// NavLink is a header navigation item pointing at a section.
type NavLink struct {
	Label   string `yaml:"label" json:"label"`
	Section string `yaml:"section" json:"section"`
}

// Site holds site-wide metadata read from site.yaml.
type Site struct {
	Title      string       `yaml:"title" json:"title"`
	Year       string       `yaml:"year" json:"year,omitempty"`
	About      string       `yaml:"about" json:"about,omitempty"`
	Contact    string       `yaml:"contact" json:"contact,omitempty"`
	Featured   string       `yaml:"featured" json:"featured,omitempty"`
	Nav        []NavLink    `yaml:"nav" json:"nav,omitempty"`
	Experience []Experience `yaml:"experience" json:"experience,omitempty"`
}
