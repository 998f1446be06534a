// Package content is the read-only content store: games, posts, the
// featured entry and the experience timeline, validated once at
// construction and looked up by (kind, slug) afterwards.
package content

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/frinky/devlog/internal/model"
)

var (
	// ErrInvalidEntry marks an entry that fails validation.
	ErrInvalidEntry = errors.New("invalid entry")
	// ErrDuplicateSlug marks two entries of the same kind sharing a slug.
	ErrDuplicateSlug = errors.New("duplicate slug")
)

type key struct {
	kind model.Kind
	slug string
}

// Store holds validated entries. It is never mutated after New returns.
type Store struct {
	site     model.Site
	games    []*model.Entry
	posts    []*model.Entry
	index    map[key]*model.Entry
	featured *model.Entry
}

// New validates entries and builds a store. Every validation problem is
// reported, joined into a single error.
func New(site model.Site, entries []*model.Entry) (*Store, error) {
	s := &Store{
		site:  site,
		index: make(map[key]*model.Entry, len(entries)),
	}

	var errs []error
	for _, e := range entries {
		if e == nil {
			continue
		}
		if err := prepare(e); err != nil {
			errs = append(errs, err)
			continue
		}
		k := key{e.Kind, e.Slug}
		if prev, ok := s.index[k]; ok {
			errs = append(errs, fmt.Errorf("%w: %s %q in %s and %s", ErrDuplicateSlug, e.Kind, e.Slug, describe(prev), describe(e)))
			continue
		}
		s.index[k] = e
		switch e.Kind {
		case model.KindGame:
			s.games = append(s.games, e)
		case model.KindPost:
			s.posts = append(s.posts, e)
		}
	}

	if site.Featured != "" {
		if _, ok := s.index[key{model.KindGame, site.Featured}]; !ok {
			errs = append(errs, fmt.Errorf("%w: featured game %q does not exist", ErrInvalidEntry, site.Featured))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	sortByDate(s.games)
	sortByDate(s.posts)
	s.featured = s.pickFeatured()
	return s, nil
}

// prepare fills defaults and validates a single entry in place.
func prepare(e *model.Entry) error {
	if _, err := model.ParseKind(string(e.Kind)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidEntry, describe(e), err)
	}
	e.Slug = strings.ToLower(strings.TrimSpace(e.Slug))
	if !slugPattern.MatchString(e.Slug) {
		return fmt.Errorf("%w: %s: slug %q must contain only letters, digits and single hyphens", ErrInvalidEntry, describe(e), e.Slug)
	}
	if strings.TrimSpace(e.Title) == "" {
		e.Title = TitleFromSlug(e.Slug)
	}
	if e.DownloadURL != "" {
		if e.Kind != model.KindGame {
			return fmt.Errorf("%w: %s: download url is only allowed on games", ErrInvalidEntry, describe(e))
		}
		if u, err := url.Parse(e.DownloadURL); err != nil || u.Scheme == "" {
			return fmt.Errorf("%w: %s: download url %q is not absolute", ErrInvalidEntry, describe(e), e.DownloadURL)
		}
	}
	e.Content = Normalize(e.Content)
	return nil
}

func describe(e *model.Entry) string {
	if e.SourcePath != "" {
		return e.SourcePath
	}
	return fmt.Sprintf("%s/%s", e.Kind, e.Slug)
}

// sortByDate orders newest first; entries without a parseable date keep
// their relative order after the dated ones.
func sortByDate(entries []*model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, okI := ParseDate(entries[i].Date)
		tj, okJ := ParseDate(entries[j].Date)
		if !okI || !okJ {
			return okI && !okJ
		}
		return ti.After(tj)
	})
}

func (s *Store) pickFeatured() *model.Entry {
	if s.site.Featured != "" {
		return s.index[key{model.KindGame, s.site.Featured}]
	}
	for _, g := range s.games {
		if g.Featured {
			return g
		}
	}
	if len(s.games) > 0 {
		return s.games[0]
	}
	return nil
}

// Find looks an entry up by kind and slug.
func (s *Store) Find(kind model.Kind, slug string) (*model.Entry, bool) {
	if s == nil {
		return nil, false
	}
	e, ok := s.index[key{kind, slug}]
	return e, ok
}

// Entries returns the entries of one kind, newest first.
func (s *Store) Entries(kind model.Kind) []*model.Entry {
	switch kind {
	case model.KindGame:
		return s.games
	case model.KindPost:
		return s.posts
	}
	return nil
}

func (s *Store) Games() []*model.Entry { return s.games }

func (s *Store) Posts() []*model.Entry { return s.posts }

// Featured returns the highlighted game, or nil when there are no games.
func (s *Store) Featured() *model.Entry { return s.featured }

func (s *Store) Site() model.Site { return s.site }

func (s *Store) Experience() []model.Experience { return s.site.Experience }

// Len is the total number of entries.
func (s *Store) Len() int { return len(s.index) }
