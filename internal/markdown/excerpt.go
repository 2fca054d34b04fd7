package markdown

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Excerpt returns the plain text of the first paragraph of a rendered body.
// Footnote reference markers are dropped and whitespace is collapsed. When
// limit is positive, text longer than limit runes is cut at the last word
// boundary that fits and suffixed with an ellipsis.
func Excerpt(body []byte, limit int) string {
	z := html.NewTokenizer(bytes.NewReader(body))

	inParagraph := false
	skipDepth := 0
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return truncateWords(b.String(), limit)
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "p":
				inParagraph = true
			case "sup":
				if inParagraph {
					skipDepth++
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "p":
				if inParagraph {
					return truncateWords(b.String(), limit)
				}
			case "sup":
				if skipDepth > 0 {
					skipDepth--
				}
			}
		case html.TextToken:
			if inParagraph && skipDepth == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func truncateWords(s string, limit int) string {
	words := strings.Fields(s)
	text := strings.Join(words, " ")
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	var out strings.Builder
	for _, w := range words {
		n := utf8.RuneCountInString(out.String())
		extra := utf8.RuneCountInString(w)
		if n > 0 {
			extra++
		}
		if n+extra > limit {
			break
		}
		if n > 0 {
			out.WriteByte(' ')
		}
		out.WriteString(w)
	}
	if out.Len() == 0 {
		// A single word longer than limit is cut mid-word.
		out.WriteString(string([]rune(text)[:limit]))
	}
	return out.String() + "…"
}
