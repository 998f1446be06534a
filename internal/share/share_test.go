package share

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/frinky/devlog/internal/config"
	"github.com/frinky/devlog/internal/content"
	"github.com/frinky/devlog/internal/model"
)

func testConfig() config.Config {
	return config.Config{
		SiteTitle:    "Frinky",
		BaseURL:      "https://frinky.org/",
		ContentDir:   "content",
		OutputDir:    "public",
		DefaultImage: "images/frog.png",
		Icon:         "/images/frog.png",
	}
}

func parse(t *testing.T, body []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err)
	return doc
}

func meta(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).Attr("content")
	return v
}

func TestBlurb(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		body  string
		words int
		want  string
	}{
		{name: "empty", body: "", words: 20, want: ""},
		{name: "short text kept", body: "Shoot things fast.", words: 20, want: "Shoot things fast."},
		{
			name:  "markup removed",
			body:  "## Patch notes\n\nSee [the page](https://example.com) and **bold** `code` ![shot](a.png) *now*.",
			words: 20,
			want:  "Patch notes See the page and bold code now.",
		},
		{name: "truncated", body: "one two three four five", words: 3, want: "one two three..."},
		{name: "list items separate", body: "- alpha\n- beta", words: 20, want: "alpha beta"},
		{name: "entities decoded", body: "Rock & Roll <3", words: 20, want: "Rock & Roll <3"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Blurb(tc.body, tc.words))
		})
	}
}

func TestNewGeneratorNeedsBaseURL(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.BaseURL = ""
	_, err := NewGenerator(cfg, nil)
	require.ErrorIs(t, err, ErrNoBaseURL)
}

func TestPage(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(testConfig(), nil)
	require.NoError(t, err)

	game := &model.Entry{Kind: model.KindGame, Slug: "bang-shoot", Title: "Bang Shoot", Image: "1.png", Content: "A twin-stick shooter."}
	page := g.Page(model.Site{Title: "Finn Rawlings (Frinky)"}, game)
	require.Equal(t, model.PageData{
		SiteTitle:   "Finn Rawlings (Frinky)",
		Title:       "Bang Shoot",
		Description: "A twin-stick shooter.",
		Image:       "https://frinky.org/1.png",
		URL:         "https://frinky.org/game/bang-shoot",
		RedirectURL: "https://frinky.org/#detail-game-bang-shoot",
		Icon:        "https://frinky.org/images/frog.png",
	}, page)

	post := &model.Entry{Kind: model.KindPost, Slug: "72-hour-bundle-note", Title: "Bundle"}
	page = g.Page(model.Site{}, post)
	require.Equal(t, "Frinky", page.SiteTitle)
	require.Equal(t, "https://frinky.org/images/frog.png", page.Image)
	require.Equal(t, "https://frinky.org/#detail-post-72-hour-bundle-note", page.RedirectURL)
}

func TestRenderEscapes(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(testConfig(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.Render(&buf, model.PageData{
		Title:       `Tom & "Jerry" <3`,
		Description: "it's <b>bold</b>",
		URL:         "https://frinky.org/post/tj",
		RedirectURL: "https://frinky.org/#detail-post-tj",
	}))
	require.NotContains(t, buf.String(), "<b>bold</b>")

	doc := parse(t, buf.Bytes())
	require.Equal(t, `Tom & "Jerry" <3`, doc.Find("title").Text())
	require.Equal(t, `Tom & "Jerry" <3`, meta(doc, `meta[property="og:title"]`))
	require.Equal(t, "it's <b>bold</b>", meta(doc, `meta[name="twitter:description"]`))
	require.Equal(t, "0;url=https://frinky.org/#detail-post-tj", meta(doc, `meta[http-equiv="refresh"]`))
	href, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	require.Equal(t, "https://frinky.org/#detail-post-tj", href)
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	store, err := content.New(model.Site{Title: "Frinky"}, []*model.Entry{
		{Kind: model.KindGame, Slug: "bang-shoot", Content: "Shoot."},
		{Kind: model.KindPost, Slug: "bang-shoot", Title: "Postmortem"},
		{Kind: model.KindPost, Slug: "tournament"},
	})
	require.NoError(t, err)

	g, err := NewGenerator(testConfig(), nil)
	require.NoError(t, err)

	out := t.TempDir()
	n, err := g.Generate(store, out)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	for _, p := range []string{"game/bang-shoot", "post/bang-shoot", "post/tournament"} {
		body, err := os.ReadFile(filepath.Join(out, p, "index.html"))
		require.NoError(t, err, p)
		doc := parse(t, body)
		kind, slug, _ := strings.Cut(p, "/")
		canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
		require.Equal(t, "https://frinky.org/#detail-"+kind+"-"+slug, canonical)
		require.Equal(t, "https://frinky.org/"+p, meta(doc, `meta[property="og:url"]`))
	}

	body, err := os.ReadFile(filepath.Join(out, "game/bang-shoot/index.html"))
	require.NoError(t, err)
	doc := parse(t, body)
	require.Equal(t, "Bang Shoot", doc.Find("title").Text())
	require.Equal(t, "Shoot.", meta(doc, `meta[property="og:description"]`))
}
