package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frinky/devlog/internal/content"
	"github.com/frinky/devlog/internal/model"
)

func routeStore(t *testing.T) *content.Store {
	t.Helper()
	store, err := content.New(model.Site{}, []*model.Entry{
		{Kind: model.KindGame, Slug: "bang-shoot", Date: "14 Oct 2025", Image: "1.png", Content: "Shoot things.\n\n- fast\n- loud", DownloadURL: "https://example.itch.io/bang-shoot"},
		{Kind: model.KindPost, Slug: "tournament", Title: "Small tournament", Meta: "pinned"},
	})
	require.NoError(t, err)
	return store
}

func TestRunRoute(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := runRoute(&out, routeStore(t), []string{"#home", "#detail-game-bang-shoot", "#about"}, 1)
	require.NoError(t, err)

	got := out.String()
	require.Contains(t, got, "load #home\n  section: home\n  route:   home\n  history: [home]\n")
	require.Contains(t, got, "  title:   Bang Shoot\n  meta:    14 Oct 2025\n  | Shoot things.\n  | - fast\n  | - loud\n  download: https://example.itch.io/bang-shoot\n")
	require.Contains(t, got, "  hero:    1.png\n")
	require.Contains(t, got, "  history: home detail-game-bang-shoot [about]\n")
	require.Contains(t, got, "back\n  title:   Bang Shoot\n")
	require.True(t, strings.HasSuffix(got, "  section: detail\n  route:   detail-game-bang-shoot\n  history: home [detail-game-bang-shoot] about\n"), got)
}

func TestRunRouteFallsBackToHome(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := runRoute(&out, routeStore(t), []string{"#detail-post-missing", "#nowhere"}, 3)
	require.NoError(t, err)

	got := out.String()
	require.Contains(t, got, "load #detail-post-missing\n  section: home\n  route:   home\n  history: [home]\n")
	require.Contains(t, got, "open #nowhere\n  section: home\n  route:   home\n  history: [home]\n", "no push for a route equal to the current entry")
	require.Contains(t, got, "back\n  at start of history\n")
}

func TestServeHandler(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>shell</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "game", "bang-shoot"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game", "bang-shoot", "index.html"), []byte("<html>share</html>"), 0o644))

	srv := httptest.NewServer(newServeHandler(dir, zap.NewNop()))
	t.Cleanup(srv.Close)

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{path: "/healthz", status: http.StatusOK, body: `{"status":"ok"}`},
		{path: "/", status: http.StatusOK, body: "shell"},
		{path: "/game/bang-shoot/", status: http.StatusOK, body: "share"},
		{path: "/game/", status: http.StatusNotFound},
		{path: "/missing.css", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer res.Body.Close()

			require.Equal(t, tt.status, res.StatusCode)
			require.Contains(t, res.Header.Get("Cache-Control"), "no-cache")
			if tt.body != "" {
				var body bytes.Buffer
				_, err := body.ReadFrom(res.Body)
				require.NoError(t, err)
				require.Contains(t, body.String(), tt.body)
			}
		})
	}
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	d := newDebouncer(20*time.Millisecond, func() { calls.Add(1) })
	for i := 0; i < 5; i++ {
		d.Trigger()
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.Never(t, func() bool { return calls.Load() > 1 }, 60*time.Millisecond, 10*time.Millisecond)
}

func TestDebouncerStop(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	d := newDebouncer(20*time.Millisecond, func() { calls.Add(1) })
	d.Trigger()
	d.Stop()

	require.Never(t, func() bool { return calls.Load() > 0 }, 60*time.Millisecond, 10*time.Millisecond)
}

func TestDebouncerRunsDoNotOverlap(t *testing.T) {
	t.Parallel()

	var active, peak, calls atomic.Int32
	d := newDebouncer(5*time.Millisecond, func() {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(60 * time.Millisecond)
		active.Add(-1)
		calls.Add(1)
	})

	d.Trigger()
	require.Eventually(t, func() bool { return active.Load() == 1 }, time.Second, time.Millisecond)
	d.Trigger()

	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
	require.Equal(t, int32(1), peak.Load())
}

func TestDebouncerStopWaitsForRun(t *testing.T) {
	t.Parallel()

	var started, finished atomic.Bool
	d := newDebouncer(time.Millisecond, func() {
		started.Store(true)
		time.Sleep(40 * time.Millisecond)
		finished.Store(true)
	})
	d.Trigger()
	require.Eventually(t, started.Load, time.Second, time.Millisecond)

	d.Stop()
	require.True(t, finished.Load())
}
