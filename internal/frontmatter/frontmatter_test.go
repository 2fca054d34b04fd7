package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nkey: value\n---\n# Title\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	fm, body, had, _, err := Split([]byte("---\ntitle: x\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: x\n"), fm)
	require.Empty(t, body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, _, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, had, _, err := Split([]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplitHeader(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHad    bool
		wantHeader string
		wantBody   string
	}{
		{
			name:       "header then blank line",
			input:      "title: A\ncreation_date: 2024-01-02\n\n# Body\n",
			wantHad:    true,
			wantHeader: "title: A\ncreation_date: 2024-01-02\n",
			wantBody:   "# Body\n",
		},
		{
			name:       "continuation line",
			input:      "summary: first\n  second\n\nbody",
			wantHad:    true,
			wantHeader: "summary: first\n  second\n",
			wantBody:   "body",
		},
		{
			name:     "header without blank line is body",
			input:    "Note: x\nJust text\n",
			wantHad:  false,
			wantBody: "Note: x\nJust text\n",
		},
		{
			name:       "header only",
			input:      "title: A",
			wantHad:    true,
			wantHeader: "title: A",
			wantBody:   "",
		},
		{name: "plain markdown", input: "# Heading\n\ntext", wantHad: false, wantBody: "# Heading\n\ntext"},
		{name: "url is not a header", input: "http://example.com\n", wantHad: false, wantBody: "http://example.com\n"},
		{name: "leading blank line", input: "\ntitle: A\n", wantHad: false, wantBody: "\ntitle: A\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body, had := SplitHeader([]byte(tt.input))
			require.Equal(t, tt.wantHad, had)
			require.Equal(t, tt.wantHeader, string(header))
			require.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestParseHeader(t *testing.T) {
	fields, err := ParseHeader([]byte("title: Hello: World\nsummary: one\n  two\nempty:\n"))
	require.NoError(t, err)
	require.Equal(t, "Hello: World", fields["title"])
	require.Equal(t, "one two", fields["summary"])
	require.Equal(t, "", fields["empty"])

	_, err = ParseHeader([]byte("title: a\ntitle: b\n"))
	require.ErrorIs(t, err, ErrInvalidFrontMatter)
}

func TestParseYAML(t *testing.T) {
	fields, err := ParseYAML([]byte("uid: abc\ntags:\n  - one\n"))
	require.NoError(t, err)
	require.Equal(t, "abc", fields["uid"])
	require.Equal(t, []any{"one"}, fields["tags"])

	fields, err = ParseYAML(nil)
	require.NoError(t, err)
	require.Empty(t, fields)

	_, err = ParseYAML([]byte(": not yaml"))
	require.Error(t, err)
}

func TestExtract(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		doc, err := Extract([]byte("---\ntitle: A\n---\nbody\n"))
		require.NoError(t, err)
		require.Equal(t, FormatYAML, doc.Format)
		require.Equal(t, "A", doc.Fields["title"])
		require.Equal(t, "body\n", string(doc.Body))
	})

	t.Run("header", func(t *testing.T) {
		doc, err := Extract([]byte("title: B\n\nbody\n"))
		require.NoError(t, err)
		require.Equal(t, FormatHeader, doc.Format)
		require.Equal(t, "B", doc.Fields["title"])
		require.Equal(t, "body\n", string(doc.Body))
	})

	t.Run("none", func(t *testing.T) {
		doc, err := Extract([]byte("# Only body\n"))
		require.NoError(t, err)
		require.Equal(t, FormatNone, doc.Format)
		require.Empty(t, doc.Fields)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Extract([]byte("---\ntitle: [unclosed\n---\nbody\n"))
		require.ErrorIs(t, err, ErrInvalidFrontMatter)
	})

	t.Run("unterminated yaml", func(t *testing.T) {
		_, err := Extract([]byte("---\ntitle: x\nbody\n"))
		require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	})
}

func TestCanonical_IsFormIndependent(t *testing.T) {
	fromYAML, err := Extract([]byte("---\ntitle: A\nauthor: me\n---\nbody"))
	require.NoError(t, err)
	fromHeader, err := Extract([]byte("author: me\ntitle: A\n\nbody"))
	require.NoError(t, err)

	a, err := Canonical(fromYAML.Fields)
	require.NoError(t, err)
	b, err := Canonical(fromHeader.Fields)
	require.NoError(t, err)
	require.Equal(t, "author: me\ntitle: A", string(a))
	require.Equal(t, a, b)

	empty, err := Canonical(nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}
