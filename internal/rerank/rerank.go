// Package rerank reorders vector search candidates with an external relevance
// model, degrading to the vector order when none is configured.
package rerank

import (
	"context"
	"log"
	"os"
	"time"

	"ragchat/internal/domain"
)

type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// New returns a Cohere reranker when the API key variable is set and a
// pass-through otherwise.
func New(cfg Config) domain.Reranker {
	env := cfg.APIKeyEnv
	if env == "" {
		env = "CO_API_KEY"
	}
	key := os.Getenv(env)
	if key == "" {
		log.Printf("%s not set, skipping reranking", env)
		return Passthrough{}
	}
	return NewCohere(cfg.BaseURL, key, cfg.Model, cfg.Timeout)
}

// Passthrough keeps the vector order and truncates to topN.
type Passthrough struct{}

func (Passthrough) Name() string { return "none" }

func (Passthrough) Rerank(_ context.Context, _ string, candidates []domain.SearchResult, topN int) ([]domain.SearchResult, error) {
	return Truncate(candidates, topN), nil
}

// Truncate returns the first topN results; topN <= 0 keeps all of them.
func Truncate(results []domain.SearchResult, topN int) []domain.SearchResult {
	if topN <= 0 || topN >= len(results) {
		return results
	}
	return results[:topN]
}
