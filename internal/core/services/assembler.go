package services

import (
	"fmt"
	"strings"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

// contextDelimiter separates chunk blocks in the assembled context.
const contextDelimiter = "\n---\n"

// AssembleContext renders retrieved chunks into the textual context
// handed to the answer generator, and collects the distinct source
// videos in first-seen order.
//
// Each chunk becomes a block of the form:
//
//	Video: <title>
//	URL: <url>
//	Content: <text>
//
// Blocks appear in match order (closest first), so the generator sees
// the most relevant material at the top of the context.
func AssembleContext(matches []domain.Match) (string, []domain.SourceRef) {
	blocks := make([]string, 0, len(matches))
	sources := make([]domain.SourceRef, 0, len(matches))
	seen := make(map[domain.SourceRef]struct{}, len(matches))

	for _, match := range matches {
		blocks = append(blocks, fmt.Sprintf("Video: %s\nURL: %s\nContent: %s",
			match.Meta.VideoTitle, match.Meta.VideoURL, match.Text))

		ref := match.Meta.Ref()
		if _, ok := seen[ref]; !ok {
			seen[ref] = struct{}{}
			sources = append(sources, ref)
		}
	}

	return strings.Join(blocks, contextDelimiter), sources
}
