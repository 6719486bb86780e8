// Package summarizer builds the extractive digest shown after a document is loaded.
package summarizer

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"ragchat/internal/embedding/tfidf"
)

var (
	wordRe     = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
	sentenceRe = regexp.MustCompile(`(?m)[^.!?\n]+(?:[.!?]+|$)`)
)

// Frequency ranks sentences by the normalized frequency of their content words.
type Frequency struct {
	stopwords map[string]struct{}
}

func NewFrequency() *Frequency {
	return &Frequency{stopwords: tfidf.Stopwords()}
}

// Summarize returns up to maxSentences of the highest scoring sentences, kept
// in document order. Text without sentence punctuation is returned trimmed.
func (s *Frequency) Summarize(text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	var sentences []string
	for _, m := range sentenceRe.FindAllString(text, -1) {
		if m = strings.TrimSpace(m); wordRe.MatchString(m) {
			sentences = append(sentences, m)
		}
	}
	if len(sentences) == 0 {
		return strings.TrimSpace(text), nil
	}

	tokens := make([][]string, len(sentences))
	freq := map[string]float64{}
	maxF := 0.0
	for i, sent := range sentences {
		tokens[i] = wordRe.FindAllString(strings.ToLower(sent), -1)
		for _, tok := range tokens[i] {
			if _, stop := s.stopwords[tok]; stop {
				continue
			}
			freq[tok]++
			maxF = math.Max(maxF, freq[tok])
		}
	}

	if maxF == 0 {
		maxF = 1
	}
	scores := make([]float64, len(sentences))
	for i := range sentences {
		for _, tok := range tokens[i] {
			scores[i] += freq[tok] / maxF
		}
		if n := len(tokens[i]); n > 0 {
			scores[i] /= math.Sqrt(float64(n))
		}
	}
	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	picked := order[:min(maxSentences, len(order))]
	sort.Ints(picked)
	out := make([]string, len(picked))
	for i, idx := range picked {
		out[i] = sentences[idx]
	}
	return strings.Join(out, " "), nil
}
