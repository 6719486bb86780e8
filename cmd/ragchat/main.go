package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"ragchat/internal/chunker"
	"ragchat/internal/config"
	"ragchat/internal/console"
	"ragchat/internal/domain"
	"ragchat/internal/embedding/openai"
	"ragchat/internal/embedding/tfidf"
	"ragchat/internal/index"
	"ragchat/internal/llm"
	"ragchat/internal/rerank"
	"ragchat/internal/service"
	"ragchat/internal/summarizer"
	"ragchat/internal/tui"
	"ragchat/internal/vectorstore/memory"
	"ragchat/internal/vectorstore/pgvector"
	"ragchat/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath string
		file    string
		useTUI  bool
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/ragchat/config.yaml if not provided)")
	flag.StringVar(&file, "file", "", "Path to the text or transcript file to chat about")
	flag.StringVar(&file, "f", "", "Shorthand for --file")
	flag.BoolVar(&useTUI, "tui", false, "Use the full-screen chat interface")
	flag.Parse()
	if file == "" {
		fmt.Fprintln(os.Stderr, "Usage: ragchat --file document.txt [--config config.yaml] [--tui]")
		os.Exit(2)
	}
	if _, err := os.Stat(file); err != nil {
		log.Fatalf("Error: File %s does not exist.", file)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "openai":
		o := cfg.Embedder.OpenAI
		client, err := openai.NewClient(openai.Config{
			BaseURL:   o.BaseURL,
			APIKeyEnv: o.APIKeyEnv,
			Model:     o.Model,
			Timeout:   time.Duration(o.TimeoutSecs) * time.Second,
			BatchSize: o.BatchSize,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	case "tfidf":
		emb = tfidf.NewEmbedder()
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var ch domain.Chunker
	switch cfg.Chunker.Type {
	case "window":
		wc, err := chunker.NewWindowChunker(cfg.Chunker.Size, cfg.Chunker.Overlap)
		if err != nil {
			log.Fatalf("chunker init failed: %v", err)
		}
		ch = wc
	case "sentence":
		ch = chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
	default:
		log.Fatalf("unknown chunker: %s", cfg.Chunker.Type)
	}

	var st domain.VectorStore
	switch cfg.VectorStore.Type {
	case "memory":
		st = memory.NewStorage()
	case "qdrant":
		q := cfg.VectorStore.Qdrant
		if q == nil {
			log.Fatalf("qdrant config missing")
		}
		st = qdrant.NewStorage(qdrant.Config{
			URL:        q.URL,
			APIKey:     q.APIKey,
			Collection: q.Collection,
			Timeout:    time.Duration(q.TimeoutSecs) * time.Second,
		})
	case "pgvector":
		p := cfg.VectorStore.PGVector
		if p == nil {
			log.Fatalf("pgvector config missing (set vector_store.pgvector.url or DATABASE_URL)")
		}
		pg, err := pgvector.Open(ctx, pgvector.Config{URL: p.URL, Table: p.Table})
		if err != nil {
			log.Fatalf("pgvector init failed: %v", err)
		}
		defer pg.Close()
		st = pg
	default:
		log.Fatalf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	var sum domain.Summarizer
	switch cfg.Summarizer.Type {
	case "frequency":
		sum = summarizer.NewFrequency()
	case "none":
	default:
		log.Fatalf("unknown summarizer: %s", cfg.Summarizer.Type)
	}

	completer, err := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKeyEnv:   cfg.LLM.APIKeyEnv,
		Model:       cfg.LLM.Model,
		Temperature: *cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("llm init failed: %v", err)
	}

	rr := rerank.New(rerank.Config{
		BaseURL:   cfg.Reranker.BaseURL,
		APIKeyEnv: cfg.Reranker.APIKeyEnv,
		Model:     cfg.Reranker.Model,
		Timeout:   time.Duration(cfg.Reranker.TimeoutSecs) * time.Second,
	})

	svc := service.NewChatService(ch, index.New(emb, st), rr, completer, sum, service.Options{
		SearchK:             cfg.Retrieval.SearchK,
		RerankTopN:          cfg.Reranker.TopN,
		SummaryMaxSentences: cfg.Summarizer.MaxSentences,
		SystemPrompt:        cfg.LLM.SystemPrompt,
	})

	log.Printf("Loading document from %s...", file)
	summary, err := svc.Ingest(ctx, file)
	if err != nil {
		log.Fatalf("Failed to load the document: %v", err)
	}

	if useTUI {
		if _, err := tea.NewProgram(tui.New(ctx, svc, summary), tea.WithAltScreen()).Run(); err != nil {
			log.Fatal(err)
		}
		return
	}

	color.New(color.FgGreen, color.Bold).Printf("Successfully loaded %s for RAG\n", file)
	if summary != "" {
		fmt.Println(color.New(color.Faint).Sprint(summary))
	}
	fmt.Printf("Model: %s, reranker: %s\n", completer.Model(), rr.Name())
	if err := console.Run(ctx, os.Stdin, os.Stdout, svc); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
