package content

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/frinky/devlog/internal/model"
)

// Snapshot is the serialized form of a Store, embedded into the built page
// so the browser client has all content in memory.
type Snapshot struct {
	Site     model.Site     `json:"site"`
	Featured string         `json:"featured,omitempty"`
	Games    []*model.Entry `json:"games"`
	Posts    []*model.Entry `json:"posts"`
}

// Snapshot captures the store contents.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{Site: s.site, Games: s.games, Posts: s.posts}
	if s.featured != nil {
		snap.Featured = s.featured.Slug
	}
	return snap
}

// WriteJSON encodes the snapshot.
func (s *Store) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(s.Snapshot())
}

// FromSnapshot rebuilds and revalidates a Store.
func FromSnapshot(snap Snapshot) (*Store, error) {
	site := snap.Site
	if snap.Featured != "" {
		site.Featured = snap.Featured
	}
	entries := make([]*model.Entry, 0, len(snap.Games)+len(snap.Posts))
	for _, g := range snap.Games {
		if g != nil {
			g.Kind = model.KindGame
			entries = append(entries, g)
		}
	}
	for _, p := range snap.Posts {
		if p != nil {
			p.Kind = model.KindPost
			entries = append(entries, p)
		}
	}
	return New(site, entries)
}

// ReadJSON decodes a snapshot and rebuilds the store.
func ReadJSON(r io.Reader) (*Store, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode content snapshot: %w", err)
	}
	return FromSnapshot(snap)
}
