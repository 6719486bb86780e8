package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"RAGCHAT_CONFIG", "LLM_BASE_URL", "LLM_MODEL", "RAGCHAT_CHUNK_SIZE", "RAGCHAT_CHUNK_OVERLAP", "RAGCHAT_SEARCH_K", "RAGCHAT_VECTOR_STORE", "DATABASE_URL"} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chunker.Type != "window" || cfg.Chunker.Size != 1000 || cfg.Chunker.Overlap != 100 {
		t.Errorf("chunker = %+v", cfg.Chunker)
	}
	if cfg.Retrieval.SearchK != 10 || cfg.Reranker.TopN != 15 || cfg.Reranker.APIKeyEnv != "CO_API_KEY" {
		t.Errorf("retrieval = %+v, reranker = %+v", cfg.Retrieval, cfg.Reranker)
	}
	if cfg.LLM.Temperature == nil || *cfg.LLM.Temperature != 0.7 || cfg.LLM.APIKeyEnv != "OPENAI_API_KEY" || cfg.LLM.Model != "gpt-3.5-turbo" {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.Embedder.Type != "openai" || cfg.Embedder.OpenAI == nil || cfg.Embedder.OpenAI.BatchSize != 32 {
		t.Errorf("embedder = %+v", cfg.Embedder)
	}
	if cfg.VectorStore.Type != "memory" {
		t.Errorf("vector store = %+v", cfg.VectorStore)
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
embedder:
  type: tfidf
llm:
  base_url: http://localhost:11434/v1
  model: llama3
  temperature: 0.2
chunker:
  type: window
  size: 500
  overlap: 50
vector_store:
  type: qdrant
  qdrant:
    url: http://localhost:6333
retrieval:
  search_k: 4
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Embedder.Type != "tfidf" || cfg.Embedder.OpenAI != nil {
		t.Errorf("embedder = %+v", cfg.Embedder)
	}
	if cfg.LLM.BaseURL != "http://localhost:11434/v1" || cfg.LLM.Model != "llama3" || cfg.LLM.Temperature == nil || *cfg.LLM.Temperature != 0.2 || cfg.LLM.TimeoutSecs != 90 {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.Chunker.Size != 500 || cfg.Chunker.Overlap != 50 {
		t.Errorf("chunker = %+v", cfg.Chunker)
	}
	if q := cfg.VectorStore.Qdrant; q == nil || q.Collection != "ragchat" || q.TimeoutSecs != 15 {
		t.Errorf("qdrant = %+v", q)
	}
	if cfg.Retrieval.SearchK != 4 {
		t.Errorf("search_k = %d", cfg.Retrieval.SearchK)
	}
}

func TestLoadYAMLTemperature(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		yaml string
		want float32
	}{
		{name: "omitted", yaml: "embedder:\n  type: tfidf\n", want: 0.7},
		{name: "explicit zero", yaml: "llm:\n  temperature: 0\n", want: 0},
		{name: "explicit", yaml: "llm:\n  temperature: 1.2\n", want: 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.LLM.Temperature == nil || *cfg.LLM.Temperature != tt.want {
				t.Errorf("temperature = %v, want %v", cfg.LLM.Temperature, tt.want)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("RAGCHAT_CHUNK_SIZE", "800")
	t.Setenv("RAGCHAT_CHUNK_OVERLAP", "not-a-number")
	t.Setenv("RAGCHAT_SEARCH_K", "7")
	t.Setenv("RAGCHAT_VECTOR_STORE", "pgvector")
	t.Setenv("DATABASE_URL", "postgres://localhost/rag")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Model != "gpt-4o-mini" || cfg.Chunker.Size != 800 || cfg.Chunker.Overlap != 100 || cfg.Retrieval.SearchK != 7 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.VectorStore.Type != "pgvector" || cfg.VectorStore.PGVector == nil || cfg.VectorStore.PGVector.URL != "postgres://localhost/rag" {
		t.Errorf("vector store = %+v", cfg.VectorStore)
	}
}

func TestLoadDefaultWritesUserConfig(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, path, err := LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(home, ".config", "ragchat", "config.yaml") {
		t.Errorf("path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config not written: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.Chunker != cfg.Chunker || again.Retrieval != cfg.Retrieval {
		t.Errorf("saved config differs: %+v vs %+v", again, cfg)
	}
}

func TestLoadDefaultHonorsEnvPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("retrieval:\n  search_k: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RAGCHAT_CONFIG", path)
	cfg, got, err := LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	if got != path || cfg.Retrieval.SearchK != 3 {
		t.Errorf("got %q, search_k %d", got, cfg.Retrieval.SearchK)
	}
}
