package route

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frinky/devlog/internal/model"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fragment string
		want     Route
	}{
		{fragment: "", want: Home()},
		{fragment: "#", want: Home()},
		{fragment: "#home", want: Home()},
		{fragment: "posts-all", want: Section("posts-all")},
		{fragment: "#about", want: Section("about")},
		{fragment: "#detail-game-bang-shoot", want: Detail(model.KindGame, "bang-shoot")},
		{fragment: "detail-post-tournament", want: Detail(model.KindPost, "tournament")},
		{fragment: "#detail-post-72-hour-bundle-note", want: Detail(model.KindPost, "72-hour-bundle-note")},
		{fragment: "#detail-post-does-not-exist", want: Detail(model.KindPost, "does-not-exist")},
		{fragment: "#detail-post-", want: Section("detail-post-")},
		{fragment: "#detail-game", want: Section("detail-game")},
		{fragment: "#detail--slug", want: Section("detail--slug")},
		{fragment: "#detail-video-clip", want: Section("detail-video-clip")},
		{fragment: "#detail", want: Section("detail")},
		{fragment: "#detail-post-hello%20world", want: Detail(model.KindPost, "hello world")},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.fragment, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Decode(tc.fragment))
		})
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	require.Equal(t, "home", Encode(Home()))
	require.Equal(t, "games-all", Encode(Section("games-all")))
	require.Equal(t, "detail-game-bang-shoot", Encode(Detail(model.KindGame, "bang-shoot")))
	require.Equal(t, "#detail-post-tournament", Detail(model.KindPost, "tournament").Fragment())
	require.Equal(t, "detail-post-100%25", Encode(Detail(model.KindPost, "100%")))
	require.Equal(t, "detail-game-hello%20world", Encode(Detail(model.KindGame, "hello world")))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	routes := []Route{
		Home(),
		Section("posts-all"),
		Section("contact"),
		Detail(model.KindGame, "bang-shoot"),
		Detail(model.KindGame, "a"),
		Detail(model.KindPost, "72-hour-bundle-note"),
		Detail(model.KindPost, "detail-post-x"),
		Detail(model.KindPost, "100%25"),
		Detail(model.KindPost, "%41b"),
		Detail(model.KindGame, "hello world"),
		Section("a/b"),
	}
	for _, r := range routes {
		require.Equal(t, r, Decode(Encode(r)), "route %v", r)
		require.Equal(t, r, Decode(r.Fragment()), "route %v", r)
	}
}
