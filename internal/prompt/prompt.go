// Package prompt renders retrieved context and chat history into a single
// completion prompt.
package prompt

import (
	"strings"

	"ragchat/internal/domain"
)

const DefaultSystem = `Based on the following context and conversation history, please answer the user's question.
Be conversational, helpful, and accurate. If the context doesn't contain relevant information,
acknowledge this and try to provide general guidance.`

// Build lays out system instructions, context, history and question. History
// is replayed as "Human:" and "Assistant:" lines.
func Build(system string, contexts []string, turns []domain.Turn, question string) string {
	if system == "" {
		system = DefaultSystem
	}
	var b strings.Builder
	b.WriteString(strings.TrimSpace(system))
	b.WriteString("\n\nContext:\n")
	b.WriteString(strings.Join(contexts, "\n\n"))
	b.WriteString("\n\nConversation History:\n")
	for _, t := range turns {
		b.WriteString("Human: ")
		b.WriteString(t.Question)
		b.WriteString("\nAssistant: ")
		b.WriteString(t.Answer)
		b.WriteString("\n")
	}
	b.WriteString("\nUser Question: ")
	b.WriteString(question)
	b.WriteString("\n\nAnswer:")
	return b.String()
}

// Contexts extracts chunk texts in result order.
func Contexts(results []domain.SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Chunk.Text
	}
	return out
}
