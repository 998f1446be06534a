package detail

import (
	"strings"

	"go.uber.org/zap"

	"github.com/frinky/devlog/internal/model"
)

// View is the text part of the detail section.
type View struct {
	Title       string
	Meta        string
	Body        []Block
	DownloadURL string
}

// Surface is the display the presenter writes to.
type Surface interface {
	ShowView(v View)
	ShowHero(h HeroState)
}

// Presenter fills the detail section for an entry.
type Presenter struct {
	surface Surface
	hero    *Hero
}

// NewPresenter builds a presenter whose hero images go through loader.
func NewPresenter(surface Surface, loader ImageLoader, logger *zap.Logger) *Presenter {
	return &Presenter{
		surface: surface,
		hero:    NewHero(loader, surface.ShowHero, logger),
	}
}

// Render derives the view for an entry.
func Render(entry *model.Entry) View {
	title := strings.TrimSpace(entry.Title)
	if title == "" {
		title = "Untitled"
	}
	return View{
		Title:       title,
		Meta:        entry.MetaLine(),
		Body:        Blocks(entry.Content),
		DownloadURL: entry.DownloadURL,
	}
}

// PresentDetail shows entry. The hero image loads in the background.
func (p *Presenter) PresentDetail(entry *model.Entry) {
	p.surface.ShowView(Render(entry))
	p.hero.Set(entry.Image)
}
