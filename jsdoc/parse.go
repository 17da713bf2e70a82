package jsdoc

import (
	"strings"

	"github.com/typebridge/typebridge/errors"
)

// ParseComment tokenizes a documentation block (`/** ... */`) into free-form
// description text and recognized tags. Tags outside the recognized
// vocabulary are dropped, text and all. Malformed embedded type expressions
// are errors: a half-read annotation must not produce a half-right
// declaration.
func ParseComment(raw string) (*Info, error) {
	body := strings.TrimSpace(raw)
	if !strings.HasPrefix(body, "/**") {
		return nil, errors.Newf("not a documentation block: %q", firstLine(raw))
	}
	body = strings.TrimPrefix(body, "/**")
	body = strings.TrimSuffix(body, "*/")

	// Group the comment into a description chunk and one chunk per tag, so
	// that brace types spanning lines stay intact.
	var chunks []string
	var current strings.Builder
	for _, line := range strings.Split(body, "\n") {
		line = stripCommentLine(line)
		if strings.HasPrefix(line, "@") {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	chunks = append(chunks, current.String())

	info := &Info{
		Description: strings.TrimSpace(chunks[0]),
		Raw:         raw,
	}
	for _, chunk := range chunks[1:] {
		tag, ok, err := parseTagChunk(chunk)
		if err != nil {
			return nil, err
		}
		if ok {
			info.Tags = append(info.Tags, tag)
		}
	}
	return info, nil
}

// stripCommentLine removes the leading ` * ` decoration of one comment line.
func stripCommentLine(line string) string {
	line = strings.TrimLeft(line, " \t")
	if strings.HasPrefix(line, "*") {
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimPrefix(line, " ")
	}
	return line
}

// parseTagChunk parses one `@tag ...` chunk. The second result is false when
// the tag name is not in the recognized vocabulary.
func parseTagChunk(chunk string) (Tag, bool, error) {
	chunk = strings.TrimSpace(chunk)
	rest := strings.TrimPrefix(chunk, "@")
	name := takeWord(rest)
	rest = strings.TrimSpace(rest[len(name):])

	kind, ok := tagKindNames[name]
	if !ok {
		return Tag{}, false, nil
	}
	tag := Tag{Kind: kind}

	if strings.HasPrefix(rest, "{") {
		typeText, remainder, err := takeBraced(rest)
		if err != nil {
			return Tag{}, false, errors.Wrapf(err, "@%s", name)
		}
		expr, err := ParseType(typeText)
		if err != nil {
			return Tag{}, false, errors.Wrapf(err, "@%s", name)
		}
		tag.Type = expr
		rest = strings.TrimSpace(remainder)
	}

	if kind == TagParam {
		tag.Name = takeWord(rest)
		rest = strings.TrimSpace(rest[len(tag.Name):])
	}

	tag.Text = rest
	return tag, true, nil
}

// takeWord returns the leading identifier-ish word of s.
func takeWord(s string) string {
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return s[:i]
		}
	}
	return s
}

// takeBraced extracts a brace-balanced `{...}` prefix, returning the inner
// text and the remainder after the closing brace.
func takeBraced(s string) (string, string, error) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], nil
			}
		}
	}
	return "", "", errors.Newf("unbalanced braces in %q", firstLine(s))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
