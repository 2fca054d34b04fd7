package post

import (
	"testing"
	"time"

	"github.com/inful/mdfp"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseMetadata(t *testing.T) {
	t.Run("title and string date", func(t *testing.T) {
		md, err := ParseMetadata(map[string]any{"title": " Hello ", "creation_date": "2024-01-02"}, true)
		require.NoError(t, err)
		require.Equal(t, "Hello", md.Title)
		require.True(t, md.HasTitle)
		require.True(t, md.HasCreationDate)
		require.Equal(t, day(2024, time.January, 2), md.CreationDate)
	})

	t.Run("yaml timestamp", func(t *testing.T) {
		md, err := ParseMetadata(map[string]any{"creation_date": day(2023, time.May, 6)}, true)
		require.NoError(t, err)
		require.Equal(t, day(2023, time.May, 6), md.CreationDate)
	})

	t.Run("timestamp with time of day is malformed", func(t *testing.T) {
		_, err := ParseMetadata(map[string]any{"creation_date": time.Date(2023, 5, 6, 10, 0, 0, 0, time.UTC)}, false)
		require.ErrorIs(t, err, ErrMalformedCreationDate)
	})

	t.Run("missing date allowed without date order", func(t *testing.T) {
		md, err := ParseMetadata(map[string]any{"title": "x"}, false)
		require.NoError(t, err)
		require.False(t, md.HasCreationDate)
	})

	t.Run("missing date rejected with date order", func(t *testing.T) {
		_, err := ParseMetadata(map[string]any{"title": "x"}, true)
		require.ErrorIs(t, err, ErrMissingCreationDate)
	})

	t.Run("malformed date rejected under either policy", func(t *testing.T) {
		for _, required := range []bool{true, false} {
			_, err := ParseMetadata(map[string]any{"creation_date": "02/01/2024"}, required)
			require.ErrorIs(t, err, ErrMalformedCreationDate)
		}
	})

	t.Run("non-string date rejected", func(t *testing.T) {
		_, err := ParseMetadata(map[string]any{"creation_date": 20240102}, false)
		require.ErrorIs(t, err, ErrMalformedCreationDate)
	})

	t.Run("nil fields", func(t *testing.T) {
		md, err := ParseMetadata(nil, false)
		require.NoError(t, err)
		require.NotNil(t, md.Fields)
		require.False(t, md.HasTitle)
	})
}

func TestNewRendered_TitleFallsBackToOutputName(t *testing.T) {
	r := NewRendered("2024-01-02-a.txt", Metadata{Fields: map[string]any{}}, []byte("<p>x</p>"), "x", "fp")
	require.Equal(t, "2024-01-02-a.html", r.OutputName)
	require.Equal(t, "2024-01-02-a.html", r.Title)
	require.Equal(t, "2024-01-02-a.txt", r.SourceName)

	r = NewRendered("a.txt", Metadata{Title: "A", HasTitle: true}, nil, "", "")
	require.Equal(t, "A", r.Title)
}

func TestOutputNameAndIsSource(t *testing.T) {
	require.Equal(t, "post.html", OutputName("post.txt"))
	require.Equal(t, "a.b.html", OutputName("a.b.txt"))
	require.True(t, IsSource("x.txt"))
	require.False(t, IsSource("x.tmpl"))
	require.False(t, IsSource("x.TXT.png"))
}

func TestFingerprint(t *testing.T) {
	body := []byte("hello\n")

	a, err := Fingerprint(map[string]any{"title": "T", "creation_date": "2024-01-02"}, body)
	require.NoError(t, err)
	b, err := Fingerprint(map[string]any{"creation_date": "2024-01-02", "title": "T", mdfp.FingerprintField: "old"}, body)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.NotEmpty(t, a)

	c, err := Fingerprint(map[string]any{"title": "T", "creation_date": "2024-01-02"}, []byte("changed\n"))
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestDiscoveryOrder(t *testing.T) {
	in := []string{"b.txt", "2024-01-02-a.txt", "a.txt", "2024-01-05-b.txt"}
	got := DiscoveryOrder(in)
	require.Equal(t, []string{"b.txt", "a.txt", "2024-01-05-b.txt", "2024-01-02-a.txt"}, got)
	require.Equal(t, "b.txt", in[0])
	require.Equal(t, "2024-01-02-a.txt", in[1], "input must not be reordered")
}

func TestSort(t *testing.T) {
	mk := func(name string, d time.Time) Rendered {
		return Rendered{OutputName: name, Date: d, HasDate: true}
	}
	posts := []Rendered{
		mk("z.html", day(2024, 1, 1)),
		mk("y.html", day(2024, 3, 1)),
		mk("x.html", day(2024, 1, 1)),
		mk("w.html", day(2024, 2, 1)),
	}

	discovery := append([]Rendered(nil), posts...)
	Sort(discovery, OrderDiscovery)
	require.Equal(t, posts, discovery)

	Sort(posts, OrderDate)
	var names []string
	for _, p := range posts {
		names = append(names, p.OutputName)
	}
	require.Equal(t, []string{"y.html", "w.html", "z.html", "x.html"}, names)
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("")
	require.NoError(t, err)
	require.Equal(t, OrderDiscovery, o)

	o, err = ParseOrder(" DATE ")
	require.NoError(t, err)
	require.Equal(t, OrderDate, o)
	require.True(t, o.RequiresDate())

	_, err = ParseOrder("alphabetical")
	require.Error(t, err)
}
