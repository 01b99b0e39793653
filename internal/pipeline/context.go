package pipeline

import (
	"strings"

	"github.com/koopa0/kusari/internal/knowledge"
)

// summaryContentMaxRunes caps chunk content in boundary summaries.
// Model prompts always receive the full content.
const summaryContentMaxRunes = 200

// BuildContext assembles the grounding context shared by both synthesis
// stages. One block per chunk, in retrieval order:
//
//	ID: <chunk id>
//	Content: <full content>
//	Examples: <example queries, "; " separated>
//	Keywords: <keywords, ", " separated>
//
// The Examples and Keywords lines are omitted when the chunk has none.
// Blocks are joined with "\n---\n". Content is never truncated here.
func BuildContext(chunks []knowledge.Retrieved) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		var b strings.Builder
		b.WriteString("ID: ")
		b.WriteString(c.ID)
		b.WriteString("\nContent: ")
		b.WriteString(c.Content)
		b.WriteString("\n")
		if len(c.Metadata.Examples) > 0 {
			b.WriteString("Examples: ")
			b.WriteString(strings.Join(c.Metadata.Examples, "; "))
			b.WriteString("\n")
		}
		if len(c.Metadata.Keywords) > 0 {
			b.WriteString("Keywords: ")
			b.WriteString(strings.Join(c.Metadata.Keywords, ", "))
			b.WriteString("\n")
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n---\n")
}

// ChunkSummary is the display form of a retrieved chunk, returned by the
// HTTP and MCP surfaces alongside answers. Content is shortened so
// responses stay readable; the full text lives only in model prompts.
type ChunkSummary struct {
	ID       string             `json:"id"`
	Content  string             `json:"content"`
	Metadata knowledge.Metadata `json:"metadata"`
	Distance float64            `json:"distance"`
	Rank     int                `json:"rank"`
}

// Summaries converts retrieved chunks into their display form.
func Summaries(chunks []knowledge.Retrieved) []ChunkSummary {
	summaries := make([]ChunkSummary, 0, len(chunks))
	for _, c := range chunks {
		summaries = append(summaries, ChunkSummary{
			ID:       c.ID,
			Content:  truncateRunes(c.Content, summaryContentMaxRunes),
			Metadata: c.Metadata,
			Distance: c.Distance,
			Rank:     c.Rank,
		})
	}
	return summaries
}

// truncateRunes shortens s to at most n runes, appending "..." when cut.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
