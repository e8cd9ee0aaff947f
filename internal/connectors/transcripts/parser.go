package transcripts

import (
	"strings"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

const (
	titlePrefix = "Video Title: "
	urlPrefix   = "Video URL: "
)

// Parse converts raw transcript file content into a Transcript.
//
// The expected layout is a title line, a URL line, a separator line of
// repeated '=' or '-' characters, then the body. Files written by hand
// or by older extractor versions may omit any of the header lines, so
// parsing is lenient: whatever header lines are present are consumed,
// everything else is body. A file with no headers at all becomes a
// Transcript with empty Title/URL and the full content as Text.
func Parse(filename, content string) domain.Transcript {
	t := domain.Transcript{Filename: filename}

	rest := content
	sawHeader := false
	if line, after, ok := cutLine(rest); ok && strings.HasPrefix(line, titlePrefix) {
		t.Title = strings.TrimSpace(strings.TrimPrefix(line, titlePrefix))
		rest = after
		sawHeader = true
	}
	if line, after, ok := cutLine(rest); ok && strings.HasPrefix(line, urlPrefix) {
		t.URL = strings.TrimSpace(strings.TrimPrefix(line, urlPrefix))
		rest = after
		sawHeader = true
	}

	// The separator and leading padding belong to the header block;
	// a headerless file is taken verbatim.
	if sawHeader {
		if line, after, ok := cutLine(rest); ok && isSeparatorLine(line) {
			rest = after
		}
		rest = strings.TrimLeft(rest, "\r\n")
	}
	t.Text = rest

	return t
}

// cutLine splits off the first line, swallowing the line ending.
// ok is false only for empty input.
func cutLine(s string) (line, rest string, ok bool) {
	if s == "" {
		return "", "", false
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimRight(s[:i], "\r"), s[i+1:], true
	}
	return s, "", true
}

// isSeparatorLine reports whether a line is a header/body divider:
// at least three '=' or '-' characters and nothing else.
func isSeparatorLine(line string) bool {
	line = strings.TrimSpace(line)
	if len(line) < 3 {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] != '=' && line[i] != '-' {
			return false
		}
	}
	return true
}
