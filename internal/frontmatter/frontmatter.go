// Package frontmatter separates a post's leading metadata block from its Markdown body.
//
// Two block forms are recognized:
//
//	---                        title: Hello
//	title: Hello               creation_date: 2024-01-02
//	creation_date: 2024-01-02
//	---                        Body starts after the first blank line.
//	Body...
//
// The fenced form is YAML. The bare header form is a run of `key: value` lines
// terminated by a blank line (or the end of the input); its values are kept as
// strings.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies which metadata block form a document used.
type Format string

const (
	FormatNone   Format = "none"
	FormatYAML   Format = "yaml"
	FormatHeader Format = "header"
)

// Style captures formatting details needed for stable serialization.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Document is a source text split into metadata and body.
type Document struct {
	Format Format
	// Raw is the metadata block without delimiters.
	Raw    []byte
	Fields map[string]any
	Body   []byte
	Style  Style
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// ErrInvalidFrontMatter wraps YAML decoding and header block failures.
var ErrInvalidFrontMatter = errors.New("invalid front matter")

// Extract splits content into a Document, trying the fenced YAML form first and
// the bare header form second. Content with neither form yields FormatNone with
// an empty field map and the full content as body.
func Extract(content []byte) (*Document, error) {
	raw, body, had, style, err := Split(content)
	if err != nil {
		return nil, err
	}
	if had {
		fields, err := ParseYAML(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
		}
		return &Document{Format: FormatYAML, Raw: raw, Fields: fields, Body: body, Style: style}, nil
	}

	raw, body, had = SplitHeader(content)
	if had {
		fields, err := ParseHeader(raw)
		if err != nil {
			return nil, err
		}
		return &Document{Format: FormatHeader, Raw: raw, Fields: fields, Body: body, Style: style}, nil
	}

	return &Document{Format: FormatNone, Fields: map[string]any{}, Body: content, Style: style}, nil
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is false
// and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)

	nl := style.Newline
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, style, nil
	}

	frontmatterStart := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(content[frontmatterStart:], closeLine) {
		bodyStart := frontmatterStart + len(closeLine)
		return []byte{}, content[bodyStart:], true, style, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[frontmatterStart:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the very last line has no trailing newline.
		if string(content[frontmatterStart:]) == "---" {
			return []byte{}, []byte{}, true, style, nil
		}
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len(nl+"---")
			if end >= frontmatterStart {
				return content[frontmatterStart : end+len(nl)], []byte{}, true, style, nil
			}
		}
		return nil, nil, false, style, ErrMissingClosingDelimiter
	}

	frontmatterEnd := frontmatterStart + idx + len(nl)
	bodyStart := frontmatterStart + idx + len(closeSeq)
	return content[frontmatterStart:frontmatterEnd], content[bodyStart:], true, style, nil
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

var headerLine = regexp.MustCompile(`^([A-Za-z0-9_][A-Za-z0-9_.-]*)[ \t]*:(?:[ \t]+(.*))?$`)

// SplitHeader separates a bare `key: value` header block from the body.
//
// The block must start on the first line. It extends over consecutive header
// lines (and indented continuation lines) and ends at the first blank line,
// which is consumed. A block that runs to the end of the input has an empty
// body. Any other line before the blank line means the content has no header
// block at all.
func SplitHeader(content []byte) (header []byte, body []byte, had bool) {
	offset := 0
	for offset < len(content) {
		end := bytes.IndexByte(content[offset:], '\n')
		next := len(content)
		line := content[offset:]
		if end >= 0 {
			line = content[offset : offset+end]
			next = offset + end + 1
		}
		text := strings.TrimRight(string(line), "\r")

		switch {
		case strings.TrimSpace(text) == "":
			if offset == 0 {
				return nil, content, false
			}
			return content[:offset], content[next:], true
		case headerLine.MatchString(text):
		case offset > 0 && (text[0] == ' ' || text[0] == '\t'):
		default:
			return nil, content, false
		}
		offset = next
	}
	if offset == 0 {
		return nil, content, false
	}
	return content, []byte{}, true
}

// ParseHeader parses a header block produced by SplitHeader. Indented
// continuation lines are joined to the previous value with a single space.
// A repeated key is an error.
func ParseHeader(header []byte) (map[string]any, error) {
	fields := map[string]any{}
	lastKey := ""
	for _, line := range strings.Split(string(header), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := headerLine.FindStringSubmatch(line); m != nil {
			key := m[1]
			if _, dup := fields[key]; dup {
				return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidFrontMatter, key)
			}
			fields[key] = strings.TrimSpace(m[2])
			lastKey = key
			continue
		}
		if lastKey == "" {
			return nil, fmt.Errorf("%w: continuation line before any key", ErrInvalidFrontMatter)
		}
		prev, _ := fields[lastKey].(string)
		cont := strings.TrimSpace(line)
		if prev == "" {
			fields[lastKey] = cont
		} else {
			fields[lastKey] = prev + " " + cont
		}
	}
	return fields, nil
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			newline = "\n"
			break
		}
	}

	hasTrailingNewline := len(content) > 0 && (content[len(content)-1] == '\n')

	return Style{
		Newline:            newline,
		HasTrailingNewline: hasTrailingNewline,
	}
}
