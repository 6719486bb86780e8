// Package service wires loading, indexing, retrieval and generation into the
// per-question chat flow.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"ragchat/internal/conversation"
	"ragchat/internal/domain"
	"ragchat/internal/index"
	"ragchat/internal/loader"
	"ragchat/internal/prompt"
	"ragchat/internal/rerank"
)

var ErrEmptyQuestion = errors.New("empty question")

type Options struct {
	SearchK             int
	RerankTopN          int
	SummaryMaxSentences int
	SystemPrompt        string
}

// ChatService answers questions about one ingested document.
type ChatService struct {
	chunker    domain.Chunker
	index      *index.Index
	reranker   domain.Reranker
	completer  domain.Completer
	summarizer domain.Summarizer
	memory     *conversation.Memory
	opts       Options
}

func NewChatService(chunker domain.Chunker, idx *index.Index, reranker domain.Reranker, completer domain.Completer, summarizer domain.Summarizer, opts Options) *ChatService {
	if opts.SearchK <= 0 {
		opts.SearchK = 10
	}
	if opts.RerankTopN <= 0 {
		opts.RerankTopN = 15
	}
	if reranker == nil {
		reranker = rerank.Passthrough{}
	}
	return &ChatService{
		chunker:    chunker,
		index:      idx,
		reranker:   reranker,
		completer:  completer,
		summarizer: summarizer,
		memory:     conversation.New(),
		opts:       opts,
	}
}

// Ingest loads the document at path, indexes its chunks and returns a short digest.
func (s *ChatService) Ingest(ctx context.Context, path string) (string, error) {
	doc, err := loader.Load(path)
	if err != nil {
		return "", err
	}
	chunks, err := s.chunker.Chunk(doc)
	if err != nil {
		return "", fmt.Errorf("chunk %s: %w", path, err)
	}
	log.Printf("split %s into %d chunks", path, len(chunks))
	if err := s.index.Build(ctx, chunks); err != nil {
		return "", err
	}
	if s.summarizer == nil {
		return "", nil
	}
	summary, err := s.summarizer.Summarize(doc.Content, s.opts.SummaryMaxSentences)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return summary, nil
}

// Ask retrieves context for question, generates an answer and records the
// turn. Memory is left untouched when any step fails.
func (s *ChatService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	results, err := s.index.SearchText(ctx, question, s.opts.SearchK)
	if err != nil {
		return "", err
	}
	ranked, err := s.reranker.Rerank(ctx, question, results, s.opts.RerankTopN)
	if err != nil {
		log.Printf("rerank with %s failed, using vector order: %v", s.reranker.Name(), err)
		ranked = rerank.Truncate(results, s.opts.RerankTopN)
	}
	p := prompt.Build(s.opts.SystemPrompt, prompt.Contexts(ranked), s.memory.Turns(), question)
	answer, err := s.completer.Complete(ctx, p)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	s.memory.Append(question, answer)
	return answer, nil
}

// History returns the conversation so far.
func (s *ChatService) History() []domain.Turn { return s.memory.Turns() }
