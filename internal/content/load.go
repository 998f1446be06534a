package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v2"

	"github.com/frinky/devlog/internal/model"
)

// SiteFile is the name of the site metadata file inside the content directory.
const SiteFile = "site.yaml"

type entryFrontMatter struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Date        string `yaml:"date"`
	Image       string `yaml:"image"`
	DownloadURL string `yaml:"download_url"`
	Meta        string `yaml:"meta"`
	Featured    bool   `yaml:"featured"`
}

// Load reads a content directory from disk.
func Load(dir string) (*Store, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("content directory %q: %w", dir, err)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads site.yaml and <kind>s/*.md from fsys and builds a Store.
func LoadFS(fsys fs.FS) (*Store, error) {
	site, err := loadSite(fsys)
	if err != nil {
		return nil, err
	}

	var entries []*model.Entry
	for _, kind := range model.Kinds {
		loaded, err := loadKind(fsys, kind)
		if err != nil {
			return nil, err
		}
		entries = append(entries, loaded...)
	}
	return New(site, entries)
}

func loadSite(fsys fs.FS) (model.Site, error) {
	var site model.Site
	raw, err := fs.ReadFile(fsys, SiteFile)
	if errors.Is(err, fs.ErrNotExist) {
		return site, nil
	}
	if err != nil {
		return site, fmt.Errorf("error reading %s: %w", SiteFile, err)
	}
	if err := yaml.Unmarshal(raw, &site); err != nil {
		return site, fmt.Errorf("error unmarshalling %s: %w", SiteFile, err)
	}
	return site, nil
}

func loadKind(fsys fs.FS, kind model.Kind) ([]*model.Entry, error) {
	dir := kind.Plural()
	files, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Strings(files)

	entries := make([]*model.Entry, 0, len(files))
	for _, name := range files {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read file '%s': %w", name, err)
		}
		entry, err := parseEntry(kind, name, raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseEntry(kind model.Kind, name string, raw []byte) (*model.Entry, error) {
	var fm entryFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse front matter in '%s': %w", name, err)
	}

	slug := fm.Slug
	if slug == "" {
		base := filepath.Base(name)
		slug = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return &model.Entry{
		Kind:        kind,
		Slug:        slug,
		Title:       strings.TrimSpace(fm.Title),
		Date:        strings.TrimSpace(fm.Date),
		Content:     string(body),
		Image:       strings.TrimSpace(fm.Image),
		DownloadURL: strings.TrimSpace(fm.DownloadURL),
		Meta:        strings.TrimSpace(fm.Meta),
		Featured:    fm.Featured,
		SourcePath:  name,
	}, nil
}
