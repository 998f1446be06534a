// Package share writes one social-preview redirect page per entry at
// <kind>/<slug>/index.html. Each page carries Open Graph and Twitter card
// tags and forwards the visitor to the entry's detail fragment.
package share

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/frinky/devlog/internal/config"
	"github.com/frinky/devlog/internal/content"
	"github.com/frinky/devlog/internal/logging"
	"github.com/frinky/devlog/internal/model"
	"github.com/frinky/devlog/internal/route"
)

//go:embed templates/redirect.html
var templateFS embed.FS

// ErrNoBaseURL is returned when share pages are requested without a base URL.
var ErrNoBaseURL = errors.New("share pages need an absolute baseURL")

// Generator renders redirect pages.
type Generator struct {
	cfg    config.Config
	tpl    *template.Template
	logger *zap.Logger
}

// NewGenerator parses the embedded redirect template.
func NewGenerator(cfg config.Config, logger *zap.Logger) (*Generator, error) {
	if cfg.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	tpl, err := template.ParseFS(templateFS, "templates/redirect.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse redirect template: %w", err)
	}
	return &Generator{cfg: cfg, tpl: tpl, logger: logging.OrNop(logger)}, nil
}

// Page builds the template data for one entry.
func (g *Generator) Page(site model.Site, e *model.Entry) model.PageData {
	image := g.cfg.AbsoluteURL(e.Image)
	if image == "" {
		image = g.cfg.AbsoluteURL(g.cfg.DefaultImage)
	}
	siteTitle := site.Title
	if siteTitle == "" {
		siteTitle = g.cfg.SiteTitle
	}
	return model.PageData{
		SiteTitle:   siteTitle,
		Title:       e.Title,
		Description: Blurb(e.Content, DefaultBlurbWords),
		Image:       image,
		URL:         g.cfg.SiteURL() + "/" + string(e.Kind) + "/" + e.Slug,
		RedirectURL: g.cfg.SiteURL() + "/" + route.Detail(e.Kind, e.Slug).Fragment(),
		Icon:        g.cfg.AbsoluteURL(g.cfg.Icon),
	}
}

// Render writes one redirect document.
func (g *Generator) Render(w io.Writer, data model.PageData) error {
	return g.tpl.ExecuteTemplate(w, "redirect.html", data)
}

// Generate writes a page for every entry in store under outDir and
// returns how many were written.
func (g *Generator) Generate(store *content.Store, outDir string) (int, error) {
	written := 0
	for _, kind := range model.Kinds {
		for _, e := range store.Entries(kind) {
			if err := g.writePage(store.Site(), e, outDir); err != nil {
				return written, err
			}
			written++
			g.logger.Debug("generated share page", zap.String("kind", string(kind)), zap.String("slug", e.Slug))
		}
	}
	g.logger.Info("share pages generated", zap.Int("count", written), zap.String("output", outDir))
	return written, nil
}

func (g *Generator) writePage(site model.Site, e *model.Entry, outDir string) error {
	dir := filepath.Join(outDir, string(e.Kind), e.Slug)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	path := filepath.Join(dir, "index.html")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create share page '%s': %w", path, err)
	}
	defer f.Close()

	if err := g.Render(f, g.Page(site, e)); err != nil {
		return fmt.Errorf("failed to render share page for %s %q: %w", e.Kind, e.Slug, err)
	}
	return f.Close()
}
