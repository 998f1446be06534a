package detail

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frinky/devlog/internal/model"
)

func TestBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []Block
	}{
		{
			name: "empty body gets placeholder text",
			text: "  \n",
			want: []Block{{Kind: Paragraph, Lines: []string{EmptyBody}}},
		},
		{
			name: "paragraphs split on blank lines",
			text: "Paragraph one.\nStill one.\n\n\nParagraph two.",
			want: []Block{
				{Kind: Paragraph, Lines: []string{"Paragraph one.", "Still one."}},
				{Kind: Paragraph, Lines: []string{"Paragraph two."}},
			},
		},
		{
			name: "bullet paragraph becomes a list",
			text: `
				This is a longer note.

				- Add bullet points
				-Add links like https://example.com
				-
				- Keep paragraphs separated
			`,
			want: []Block{
				{Kind: Paragraph, Lines: []string{"This is a longer note."}},
				{Kind: List, Lines: []string{"Add bullet points", "Add links like https://example.com", "Keep paragraphs separated"}},
			},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Blocks(tc.text))
		})
	}
}

func TestHTMLEscapes(t *testing.T) {
	t.Parallel()

	got := HTML([]Block{
		{Kind: Paragraph, Lines: []string{"a <b>", "c & d"}},
		{Kind: List, Lines: []string{"x", "<script>"}},
	})
	require.Equal(t, "<p>a &lt;b&gt;<br>c &amp; d</p><ul><li>x</li><li>&lt;script&gt;</li></ul>", got)
}

type recordingSurface struct {
	mu     sync.Mutex
	views  []View
	heroes []HeroState
}

func (s *recordingSurface) ShowView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = append(s.views, v)
}

func (s *recordingSurface) ShowHero(h HeroState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heroes = append(s.heroes, h)
}

func (s *recordingSurface) lastHero() HeroState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heroes[len(s.heroes)-1]
}

// manualLoader holds completions until the test releases them.
type manualLoader struct {
	pending map[string]func(error)
}

func (l *manualLoader) Load(url string, done func(error)) {
	if l.pending == nil {
		l.pending = map[string]func(error){}
	}
	l.pending[url] = done
}

func (l *manualLoader) finish(url string, err error) {
	l.pending[url](err)
}

func TestPresentDetail(t *testing.T) {
	t.Parallel()

	surface := &recordingSurface{}
	p := NewPresenter(surface, nil, nil)

	p.PresentDetail(&model.Entry{Kind: model.KindGame, Slug: "bang-shoot", Title: "Bang Shoot", Meta: "Jam entry", Image: "1.png", DownloadURL: "https://frinky.itch.io/bang-shoot"})
	require.Equal(t, View{
		Title:       "Bang Shoot",
		Meta:        "Jam entry",
		Body:        []Block{{Kind: Paragraph, Lines: []string{EmptyBody}}},
		DownloadURL: "https://frinky.itch.io/bang-shoot",
	}, surface.views[0])
	require.Equal(t, HeroState{Image: "1.png"}, surface.lastHero())

	p.PresentDetail(&model.Entry{Kind: model.KindPost, Slug: "x", Date: "12 Oct 2025", Meta: "ignored"})
	require.Equal(t, "Untitled", surface.views[1].Title)
	require.Equal(t, "12 Oct 2025", surface.views[1].Meta)
	require.Equal(t, Placeholder, surface.lastHero())
}

func TestHeroIgnoresStaleCompletion(t *testing.T) {
	t.Parallel()

	surface := &recordingSurface{}
	loader := &manualLoader{}
	p := NewPresenter(surface, loader, nil)

	p.PresentDetail(&model.Entry{Kind: model.KindGame, Slug: "slow", Image: "slow.png"})
	require.Equal(t, HeroState{Loading: true}, surface.lastHero())
	p.PresentDetail(&model.Entry{Kind: model.KindGame, Slug: "fast", Image: "fast.png"})

	loader.finish("fast.png", nil)
	require.Equal(t, HeroState{Image: "fast.png"}, surface.lastHero())

	loader.finish("slow.png", nil)
	require.Equal(t, HeroState{Image: "fast.png"}, surface.lastHero(), "stale image must not overwrite")
	require.Len(t, surface.heroes, 3)
}

func TestHeroFailureFallsBackToPlaceholder(t *testing.T) {
	t.Parallel()

	surface := &recordingSurface{}
	loader := &manualLoader{}
	hero := NewHero(loader, surface.ShowHero, nil)

	hero.Set("broken.png")
	loader.finish("broken.png", errors.New("404"))
	require.Equal(t, Placeholder, surface.lastHero())

	// A navigation to an entry without an image also invalidates pending loads.
	hero.Set("late.png")
	hero.Set("")
	loader.finish("late.png", nil)
	require.Equal(t, Placeholder, surface.lastHero())
	require.Equal(t, uint64(3), hero.Token())
}

func TestHeroConcurrentCompletions(t *testing.T) {
	t.Parallel()

	surface := &recordingSurface{}
	loader := &manualLoader{}
	hero := NewHero(loader, surface.ShowHero, nil)

	images := []string{"a.png", "b.png", "c.png", "d.png"}
	for _, img := range images {
		hero.Set(img)
	}

	var wg sync.WaitGroup
	for _, img := range images {
		done := loader.pending[img]
		wg.Add(1)
		go func() {
			defer wg.Done()
			done(nil)
		}()
	}
	wg.Wait()

	require.Equal(t, HeroState{Image: "d.png"}, surface.lastHero())
}
