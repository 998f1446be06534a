// Package site builds the single-page shell: it renders the layouts with
// every section in place, embeds the content snapshot for the browser
// router, copies static assets and writes the share pages.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/frinky/devlog/internal/config"
	"github.com/frinky/devlog/internal/content"
	"github.com/frinky/devlog/internal/logging"
	"github.com/frinky/devlog/internal/model"
	"github.com/frinky/devlog/internal/nav"
	"github.com/frinky/devlog/internal/route"
	"github.com/frinky/devlog/internal/share"
)

const (
	baseLayout = "base.html"
	// homeLimit caps the games and posts previewed on the home section.
	homeLimit = 6
)

//go:embed layouts
var embeddedLayouts embed.FS

// Default assets such as style.css; files from the static directory win.
//
//go:embed assets
var embeddedAssets embed.FS

// NavItem is a rendered navigation link.
type NavItem struct {
	Label   string
	Section string
	Href    string
}

// Row is a feed line: the entry plus its meta column.
type Row struct {
	Entry *model.Entry
	Meta  string
}

// ShellData is the template context of base.html.
type ShellData struct {
	Site        model.Site
	Title       string
	Icon        string
	Nav         []NavItem
	Featured    *model.Entry
	Games       []*model.Entry
	LatestGames []*model.Entry
	Posts       []Row
	LatestPosts []Row
	Experience  []model.Experience
	ContentJSON template.JS
}

// Result summarizes a build.
type Result struct {
	Entries    int
	SharePages int
}

// Builder runs site builds. A compiled client is kept across builds, so
// reuse one Builder for repeated rebuilds.
type Builder struct {
	cfg     config.Config
	logger  *zap.Logger
	now     func() time.Time
	compile func(pkg, out string) error
	goroot  func() (string, error)

	mu       sync.Mutex
	compiled []byte
}

// NewBuilder creates a builder for cfg.
func NewBuilder(cfg config.Config, logger *zap.Logger) *Builder {
	return &Builder{
		cfg:     cfg,
		logger:  logging.OrNop(logger),
		now:     time.Now,
		compile: goBuildWasm,
		goroot:  goRoot,
	}
}

// Build cleans the output directory and regenerates the whole site.
func (b *Builder) Build(store *content.Store) (Result, error) {
	var res Result
	outputDir := b.cfg.OutputDir

	client, err := b.loadClient()
	if err != nil {
		return res, err
	}

	b.logger.Info("cleaning output directory", zap.String("dir", outputDir))
	if err := os.RemoveAll(outputDir); err != nil {
		return res, fmt.Errorf("failed to remove output directory '%s': %w", outputDir, err)
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return res, fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}

	if staticDir := b.cfg.StaticDir; staticDir != "" {
		if _, err := os.Stat(staticDir); err == nil {
			n, err := copyTree(os.DirFS(staticDir), outputDir, true)
			if err != nil {
				return res, fmt.Errorf("failed to copy static assets: %w", err)
			}
			b.logger.Info("copied static assets", zap.String("from", staticDir), zap.Int("files", n))
		} else {
			b.logger.Info("static directory not found, skipping copy", zap.String("dir", staticDir))
		}
	}
	assets, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return res, err
	}
	if _, err := copyTree(assets, outputDir, false); err != nil {
		return res, fmt.Errorf("failed to write default assets: %w", err)
	}
	if err := b.writeClient(outputDir, client); err != nil {
		return res, err
	}

	tpl, err := b.parseLayouts()
	if err != nil {
		return res, err
	}

	indexPath := filepath.Join(outputDir, "index.html")
	f, err := os.Create(indexPath)
	if err != nil {
		return res, fmt.Errorf("failed to create '%s': %w", indexPath, err)
	}
	defer f.Close()
	if err := b.renderShell(f, tpl, store); err != nil {
		return res, err
	}
	if err := f.Close(); err != nil {
		return res, fmt.Errorf("failed to write '%s': %w", indexPath, err)
	}
	res.Entries = store.Len()
	b.logger.Info("generated shell", zap.String("path", indexPath), zap.Int("entries", res.Entries))

	if b.cfg.BaseURL == "" {
		b.logger.Warn("baseURL not set, skipping share pages")
		return res, nil
	}
	gen, err := share.NewGenerator(b.cfg, b.logger)
	if err != nil {
		return res, err
	}
	res.SharePages, err = gen.Generate(store, outputDir)
	return res, err
}

// parseLayouts loads the project layouts directory when it exists, else
// the embedded defaults. base.html and partials/*.html are required
// shapes; any other top-level .html file is parsed as well.
func (b *Builder) parseLayouts() (*template.Template, error) {
	var fsys fs.FS
	if dir := b.cfg.LayoutsDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			b.logger.Info("using project layouts", zap.String("dir", dir))
			fsys = os.DirFS(dir)
		}
	}
	if fsys == nil {
		sub, err := fs.Sub(embeddedLayouts, "layouts")
		if err != nil {
			return nil, err
		}
		fsys = sub
	}

	tpl := template.New(baseLayout).Funcs(template.FuncMap{
		"fragment": func(e *model.Entry) string { return route.Detail(e.Kind, e.Slug).Fragment() },
		"tint":     TintStyle,
	})
	patterns := []string{"*.html"}
	if matches, _ := fs.Glob(fsys, "partials/*.html"); len(matches) > 0 {
		patterns = append(patterns, "partials/*.html")
	}
	tpl, err := tpl.ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layouts: %w", err)
	}
	if base := tpl.Lookup(baseLayout); base == nil || base.Tree == nil {
		return nil, fmt.Errorf("%s not found in layouts", baseLayout)
	}
	return tpl, nil
}

func (b *Builder) renderShell(w io.Writer, tpl *template.Template, store *content.Store) error {
	data, err := b.shellData(store)
	if err != nil {
		return err
	}
	if err := tpl.ExecuteTemplate(w, baseLayout, data); err != nil {
		return fmt.Errorf("failed to execute template '%s': %w", baseLayout, err)
	}
	return nil
}

func (b *Builder) shellData(store *content.Store) (ShellData, error) {
	var snapshot bytes.Buffer
	if err := store.WriteJSON(&snapshot); err != nil {
		return ShellData{}, fmt.Errorf("failed to encode content: %w", err)
	}

	site := store.Site()
	title := site.Title
	if title == "" {
		title = b.cfg.SiteTitle
	}

	now := b.now()
	posts := make([]Row, 0, len(store.Posts()))
	for _, p := range store.Posts() {
		posts = append(posts, Row{Entry: p, Meta: content.FeedMeta(p.Meta, p.Date, now)})
	}

	return ShellData{
		Site:        site,
		Title:       title,
		Icon:        b.cfg.Icon,
		Nav:         navItems(site.Nav),
		Featured:    store.Featured(),
		Games:       store.Games(),
		LatestGames: limit(store.Games(), homeLimit),
		Posts:       posts,
		LatestPosts: limit(posts, homeLimit),
		Experience:  store.Experience(),
		ContentJSON: template.JS(bytes.TrimSpace(snapshot.Bytes())),
	}, nil
}

func navItems(links []model.NavLink) []NavItem {
	if len(links) == 0 {
		links = []model.NavLink{{Label: "homepage", Section: nav.SectionHome}}
		for _, id := range nav.DefaultSections {
			links = append(links, model.NavLink{Label: id, Section: id})
		}
	}
	items := make([]NavItem, 0, len(links))
	for _, l := range links {
		r := route.Section(l.Section)
		if l.Section == nav.SectionHome {
			r = route.Home()
		}
		items = append(items, NavItem{Label: l.Label, Section: l.Section, Href: r.Fragment()})
	}
	return items
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
