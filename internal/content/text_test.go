package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "only blank lines", in: "\n  \n\t\n", want: ""},
		{name: "shared indentation removed", in: "\n    one\n      two\n    three\n", want: "one\n  two\nthree"},
		{name: "blank lines inside kept", in: "  a\n\n  b", want: "a\n\nb"},
		{name: "crlf line endings", in: "  a\r\n  b\r\n", want: "a\nb"},
		{name: "no indentation", in: "a\n b", want: "a\n b"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestTitleFromSlug(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Bang Shoot", TitleFromSlug("bang-shoot"))
	require.Equal(t, "72 Hour Bundle Note", TitleFromSlug("72-hour-bundle-note"))
	require.Equal(t, "Night Ferry", TitleFromSlug("night_ferry"))
}

func TestDaysAgo(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.November, 16, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "10 days ago", DaysAgo("06 Nov 2025", now))
	require.Equal(t, "0 days ago", DaysAgo("2025-11-16", now))
	require.Empty(t, DaysAgo("someday", now))
	require.Empty(t, DaysAgo("", now))

	require.Equal(t, "Remote", FeedMeta("Remote", "06 Nov 2025", now))
	require.Equal(t, "10 days ago", FeedMeta("", "06 Nov 2025", now))
}
