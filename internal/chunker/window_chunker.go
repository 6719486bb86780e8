package chunker

import (
	"fmt"
	"iter"
	"slices"
	"strconv"

	"ragchat/internal/domain"
)

// WindowChunker splits text into fixed-size rune windows that overlap.
type WindowChunker struct {
	size    int
	overlap int
}

// NewWindowChunker returns a chunker producing windows of size runes, each
// starting size-overlap runes after the previous one.
func NewWindowChunker(size, overlap int) (*WindowChunker, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: size=%d overlap=%d", domain.ErrInvalidWindow, size, overlap)
	}
	return &WindowChunker{size: size, overlap: overlap}, nil
}

// Size returns the window size in runes.
func (c *WindowChunker) Size() int { return c.size }

// Overlap returns the number of runes shared by consecutive windows.
func (c *WindowChunker) Overlap() int { return c.overlap }

// Chunks lazily yields the windows of document. The sequence can be ranged
// over any number of times.
func (c *WindowChunker) Chunks(document domain.Document) iter.Seq[domain.Chunk] {
	return func(yield func(domain.Chunk) bool) {
		runes := []rune(document.Content)
		step := c.size - c.overlap
		for start, idx := 0, 0; start < len(runes); start, idx = start+step, idx+1 {
			end := min(start+c.size, len(runes))
			chunk := domain.Chunk{
				DocumentID: document.ID,
				ChunkID:    document.ID + ":" + strconv.Itoa(idx),
				Index:      idx,
				Offset:     start,
				Text:       string(runes[start:end]),
			}
			if !yield(chunk) {
				return
			}
			if end == len(runes) {
				return
			}
		}
	}
}

func (c *WindowChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	return slices.Collect(c.Chunks(document)), nil
}
