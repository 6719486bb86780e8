package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ragchat/internal/domain"
)

const (
	DefaultCohereURL   = "https://api.cohere.com"
	DefaultCohereModel = "rerank-v3.5"
)

// Cohere calls the Cohere v2 rerank endpoint.
type Cohere struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewCohere(baseURL, apiKey, model string, timeout time.Duration) *Cohere {
	if baseURL == "" {
		baseURL = DefaultCohereURL
	}
	if model == "" {
		model = DefaultCohereModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Cohere{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Cohere) Name() string { return "cohere:" + c.model }

type rerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	TopN      int      `json:"top_n,omitempty"`
}

type rerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
}

// Rerank returns at most topN candidates ordered by Cohere relevance score.
// Scores are replaced by the relevance score.
func (c *Cohere) Rerank(ctx context.Context, query string, candidates []domain.SearchResult, topN int) ([]domain.SearchResult, error) {
	if len(candidates) == 0 {
		return []domain.SearchResult{}, nil
	}
	if topN <= 0 || topN > len(candidates) {
		topN = len(candidates)
	}
	docs := make([]string, len(candidates))
	for i, r := range candidates {
		docs[i] = r.Chunk.Text
	}
	body, err := json.Marshal(rerankRequest{Model: c.model, Query: query, Documents: docs, TopN: topN})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/rerank", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("cohere rerank error: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	var rr rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("decode rerank response: %w", err)
	}
	out := make([]domain.SearchResult, 0, len(rr.Results))
	for _, item := range rr.Results {
		if item.Index < 0 || item.Index >= len(candidates) {
			return nil, fmt.Errorf("cohere returned index %d for %d documents", item.Index, len(candidates))
		}
		r := candidates[item.Index]
		r.Score = item.RelevanceScore
		out = append(out, r)
	}
	return out[:min(topN, len(out))], nil
}
