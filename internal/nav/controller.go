// Package nav owns the page's navigation state: which section is visible,
// which entry the detail view shows, and what the history stack records.
package nav

import (
	"go.uber.org/zap"

	"github.com/frinky/devlog/internal/logging"
	"github.com/frinky/devlog/internal/model"
	"github.com/frinky/devlog/internal/route"
)

// Section container ids.
const (
	SectionHome   = "home"
	SectionDetail = "detail"
)

// DefaultSections are the named sections of the site shell.
var DefaultSections = []string{"posts-all", "games-all", "about", "contact"}

// EntryFinder resolves entries by kind and slug.
type EntryFinder interface {
	Find(kind model.Kind, slug string) (*model.Entry, bool)
}

// SectionRenderer makes exactly one section container visible.
type SectionRenderer interface {
	ShowSection(id string)
}

// DetailPresenter renders an entry into the detail section. It is only
// ever called with an entry the store resolved.
type DetailPresenter interface {
	PresentDetail(entry *model.Entry)
}

// Controller translates routes into visible state. It is the only writer
// of History. Calls are expected from a single event loop; it does no locking.
type Controller struct {
	store    EntryFinder
	sections SectionRenderer
	detail   DetailPresenter
	history  History
	logger   *zap.Logger

	known   map[string]struct{}
	current route.Route
	entry   *model.Entry
}

// Option configures a Controller.
type Option func(*Controller)

// WithSections replaces the set of named sections.
func WithSections(ids ...string) Option {
	return func(c *Controller) {
		c.known = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			c.known[id] = struct{}{}
		}
	}
}

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logging.OrNop(logger) }
}

// New wires a controller and subscribes it to history pops.
func New(store EntryFinder, sections SectionRenderer, detail DetailPresenter, history History, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		sections: sections,
		detail:   detail,
		history:  history,
		logger:   zap.NewNop(),
	}
	WithSections(DefaultSections...)(c)
	for _, opt := range opts {
		opt(c)
	}
	delete(c.known, SectionHome)
	delete(c.known, SectionDetail)
	history.OnPop(c.HandlePop)
	return c
}

// Start derives the initial state from the page's fragment and records it
// on the current history entry without pushing.
func (c *Controller) Start(fragment string) route.Route {
	r := c.Navigate(route.Decode(fragment), false)
	c.history.Replace(r, route.Encode(r))
	return r
}

// Navigate moves to r, degrading anything unresolvable to Home. With push
// set, a new history entry is recorded unless the current entry already
// holds the same route. It returns the route that became active.
func (c *Controller) Navigate(r route.Route, push bool) route.Route {
	switch r.Variant {
	case route.VariantDetail:
		entry, ok := c.store.Find(r.Kind, r.Slug)
		if !ok {
			c.logger.Debug("unresolvable detail route, falling back to home",
				zap.String("kind", string(r.Kind)),
				zap.String("slug", r.Slug),
			)
			return c.Navigate(route.Home(), push)
		}
		c.detail.PresentDetail(entry)
		c.sections.ShowSection(SectionDetail)
		c.entry = entry
	case route.VariantSection:
		if _, ok := c.known[r.Section]; !ok {
			c.logger.Debug("unknown section, falling back to home", zap.String("section", r.Section))
			return c.Navigate(route.Home(), push)
		}
		c.sections.ShowSection(r.Section)
		c.entry = nil
	default:
		r = route.Home()
		c.sections.ShowSection(SectionHome)
		c.entry = nil
	}

	if push {
		c.push(r)
	}
	c.current = r
	return r
}

func (c *Controller) push(r route.Route) {
	if top, ok := c.history.Current(); ok && top == r {
		return
	}
	c.history.Push(r, route.Encode(r))
}

// OpenDetail is the list-item click path.
func (c *Controller) OpenDetail(kind model.Kind, slug string) route.Route {
	return c.Navigate(route.Detail(kind, slug), true)
}

// OpenSection is the nav-link click path.
func (c *Controller) OpenSection(id string) route.Route {
	if id == SectionHome {
		return c.Navigate(route.Home(), true)
	}
	return c.Navigate(route.Section(id), true)
}

// HandlePop replays a back/forward entry. It never pushes.
func (c *Controller) HandlePop(state *route.Route, fragment string) {
	r := route.Decode(fragment)
	if state != nil {
		r = *state
	}
	c.Navigate(r, false)
}

// Current is the active route.
func (c *Controller) Current() route.Route { return c.current }

// Entry is the entry shown by the detail view, or nil outside it.
func (c *Controller) Entry() *model.Entry { return c.entry }
