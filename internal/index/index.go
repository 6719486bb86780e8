// Package index builds a vector index over document chunks once and answers
// top-k similarity queries against it.
package index

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"ragchat/internal/domain"
)

// Index couples an embedder with a vector store. It is immutable once built.
type Index struct {
	embedder domain.Embedder
	store    domain.VectorStore

	mu     sync.RWMutex
	built  bool
	chunks []domain.Chunk
}

func New(embedder domain.Embedder, store domain.VectorStore) *Index {
	return &Index{embedder: embedder, store: store}
}

// Build embeds every chunk and stores the vectors. It may be called once.
func (x *Index) Build(ctx context.Context, chunks []domain.Chunk) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.built {
		return domain.ErrIndexBuilt
	}
	if len(chunks) == 0 {
		return domain.ErrNoChunks
	}
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}
	if err := x.embedder.Prepare(texts); err != nil {
		return fmt.Errorf("prepare %s embedder: %w", x.embedder.Name(), err)
	}
	vectors, err := x.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: %d vectors for %d chunks", len(vectors), len(chunks))
	}
	dim := x.embedder.Dimension()
	if dim == 0 {
		dim = len(vectors[0])
	}
	if err := x.store.Init(ctx, dim); err != nil {
		return fmt.Errorf("init vector store: %w", err)
	}
	if err := x.store.Upsert(ctx, chunks, vectors); err != nil {
		return fmt.Errorf("store vectors: %w", err)
	}
	x.chunks = append([]domain.Chunk(nil), chunks...)
	x.built = true
	log.Printf("indexed %d chunks (embedder=%s, dim=%d)", len(chunks), x.embedder.Name(), dim)
	return nil
}

// Len returns the number of indexed chunks.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.chunks)
}

// Search returns at most k chunks ordered by non-increasing similarity to vector.
func (x *Index) Search(ctx context.Context, vector []float32, k int) ([]domain.SearchResult, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if !x.built {
		return nil, domain.ErrIndexEmpty
	}
	if k <= 0 {
		return []domain.SearchResult{}, nil
	}
	return x.store.Search(ctx, vector, k)
}

// SearchText embeds query and searches for it. Queries the embedder cannot
// represent, or that are orthogonal to every chunk, are ranked lexically
// instead. Negative similarities are a real ranking and are kept.
func (x *Index) SearchText(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	x.mu.RLock()
	built := x.built
	x.mu.RUnlock()
	if !built {
		return nil, domain.ErrIndexEmpty
	}
	vec, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if isZero(vec) {
		log.Printf("query %q has no vector terms, ranking lexically", query)
		return x.lexicalSearch(query, k), nil
	}
	res, err := x.Search(ctx, vec, k)
	if err != nil {
		return nil, err
	}
	for _, r := range res {
		if math.Abs(r.Score) > 1e-9 {
			return res, nil
		}
	}
	if len(res) > 0 {
		log.Printf("query %q is orthogonal to every chunk, ranking lexically", query)
		return x.lexicalSearch(query, k), nil
	}
	return res, nil
}

func isZero(v []float32) bool {
	for _, f := range v {
		if f != 0 {
			return false
		}
	}
	return true
}
