package domain

import (
	"context"
	"errors"
)

var (
	// ErrIndexEmpty is returned when the index is queried before it was built.
	ErrIndexEmpty = errors.New("vector index is empty: build it before searching")
	// ErrIndexBuilt is returned when Build is called on an index that already holds vectors.
	ErrIndexBuilt = errors.New("vector index already built")
	// ErrNoChunks is returned when a document produced nothing to index.
	ErrNoChunks = errors.New("no chunks to index")
	// ErrInvalidWindow is returned for a chunk window where overlap >= size.
	ErrInvalidWindow = errors.New("invalid chunk window")
	// ErrDimensionMismatch is returned when a vector does not match the index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// Document represents a single text file loaded into the system.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is a contiguous span of a document used for indexing.
// Offset is the rune offset of the span within the document.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Index      int
	Offset     int
	Text       string
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Turn is one question/answer exchange of a conversation.
type Turn struct {
	Question string
	Answer   string
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// VectorStore persists vectors and supports similarity search.
type VectorStore interface {
	Init(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, chunks []Chunk, vectors [][]float32) error
	Search(ctx context.Context, vector []float32, topK int) ([]SearchResult, error)
	Clear(ctx context.Context) error
}

// Reranker reorders retrieved candidates by relevance to the query.
type Reranker interface {
	Name() string
	Rerank(ctx context.Context, query string, candidates []SearchResult, topN int) ([]SearchResult, error)
}

// Completer turns a prompt into generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
