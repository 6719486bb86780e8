package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// OpenAIConfig holds connection settings shared by the embedder and the LLM.
type OpenAIConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	BatchSize   int    `yaml:"batch_size,omitempty"`
}

// EmbedderConfig selects the text embedder: openai or tfidf.
type EmbedderConfig struct {
	Type   string        `yaml:"type"`
	OpenAI *OpenAIConfig `yaml:"openai,omitempty"`
}

type LLMConfig struct {
	OpenAIConfig `yaml:",inline"`
	// Temperature is nil when unset so an explicit 0 survives defaulting.
	Temperature  *float32 `yaml:"temperature"`
	MaxTokens    int      `yaml:"max_tokens"`
	SystemPrompt string   `yaml:"system_prompt,omitempty"`
}

// ChunkerConfig configures how documents are split: window or sentence.
type ChunkerConfig struct {
	Type              string `yaml:"type"`
	Size              int    `yaml:"size"`
	Overlap           int    `yaml:"overlap"`
	SentencesPerChunk int    `yaml:"sentences_per_chunk,omitempty"`
	OverlapSentences  int    `yaml:"overlap_sentences,omitempty"`
}

// VectorStoreConfig selects the vector store: memory, qdrant or pgvector.
type VectorStoreConfig struct {
	Type     string          `yaml:"type"`
	Qdrant   *QdrantConfig   `yaml:"qdrant,omitempty"`
	PGVector *PGVectorConfig `yaml:"pgvector,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

type PGVectorConfig struct {
	URL   string `yaml:"url"`
	Table string `yaml:"table"`
}

type RetrievalConfig struct {
	SearchK int `yaml:"search_k"`
}

// RerankerConfig enables Cohere reranking when the key variable is set.
type RerankerConfig struct {
	BaseURL     string `yaml:"base_url,omitempty"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TopN        int    `yaml:"top_n"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

type SummarizerConfig struct {
	Type         string `yaml:"type"`
	MaxSentences int    `yaml:"max_sentences"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder    EmbedderConfig    `yaml:"embedder"`
	LLM         LLMConfig         `yaml:"llm"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Reranker    RerankerConfig    `yaml:"reranker"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
}

// Load reads a config from path. A missing file yields defaults. Environment
// overrides are applied last.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			overrideByEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	overrideByEnv(&cfg)
	return &cfg, nil
}

// LoadDefault tries $RAGCHAT_CONFIG, ./config.yaml, then ~/.config/ragchat/config.yaml.
// If none exists, it writes defaults to ~/.config/ragchat/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	if p := os.Getenv("RAGCHAT_CONFIG"); p != "" {
		cfg, err := Load(p)
		return cfg, p, err
	}
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	overrideByEnv(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ragchat", "config.yaml"), nil
}

const defaultTemperature float32 = 0.7

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Embedder: EmbedderConfig{Type: "openai"},
		Chunker:  ChunkerConfig{Type: "window"},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "openai"
	}
	if cfg.Embedder.Type == "openai" {
		if cfg.Embedder.OpenAI == nil {
			cfg.Embedder.OpenAI = &OpenAIConfig{}
		}
		o := cfg.Embedder.OpenAI
		openAIDefaults(o, "text-embedding-3-small", 30)
		if o.BatchSize == 0 {
			o.BatchSize = 32
		}
	}

	openAIDefaults(&cfg.LLM.OpenAIConfig, "gpt-3.5-turbo", 90)
	if cfg.LLM.Temperature == nil {
		t := defaultTemperature
		cfg.LLM.Temperature = &t
	}

	if cfg.Chunker.Type == "" {
		cfg.Chunker.Type = "window"
	}
	if cfg.Chunker.Size == 0 {
		cfg.Chunker.Size = 1000
	}
	if cfg.Chunker.Overlap == 0 {
		cfg.Chunker.Overlap = 100
	}
	if cfg.Chunker.SentencesPerChunk == 0 {
		cfg.Chunker.SentencesPerChunk = 5
	}

	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "memory"
	}
	if q := cfg.VectorStore.Qdrant; q != nil {
		if q.Collection == "" {
			q.Collection = "ragchat"
		}
		if q.TimeoutSecs == 0 {
			q.TimeoutSecs = 15
		}
	}
	if cfg.VectorStore.Type == "pgvector" && cfg.VectorStore.PGVector == nil {
		cfg.VectorStore.PGVector = &PGVectorConfig{}
	}
	if p := cfg.VectorStore.PGVector; p != nil && p.Table == "" {
		p.Table = "ragchat_chunks"
	}

	if cfg.Retrieval.SearchK == 0 {
		cfg.Retrieval.SearchK = 10
	}
	if cfg.Reranker.APIKeyEnv == "" {
		cfg.Reranker.APIKeyEnv = "CO_API_KEY"
	}
	if cfg.Reranker.Model == "" {
		cfg.Reranker.Model = "rerank-v3.5"
	}
	if cfg.Reranker.TopN == 0 {
		cfg.Reranker.TopN = 15
	}
	if cfg.Reranker.TimeoutSecs == 0 {
		cfg.Reranker.TimeoutSecs = 30
	}
	if cfg.Summarizer.Type == "" {
		cfg.Summarizer.Type = "frequency"
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = 3
	}
}

func openAIDefaults(o *OpenAIConfig, model string, timeoutSecs int) {
	if o.BaseURL == "" {
		o.BaseURL = "https://api.openai.com/v1"
	}
	if o.APIKeyEnv == "" {
		o.APIKeyEnv = "OPENAI_API_KEY"
	}
	if o.Model == "" {
		o.Model = model
	}
	if o.TimeoutSecs == 0 {
		o.TimeoutSecs = timeoutSecs
	}
}

func overrideByEnv(cfg *AppConfig) {
	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.Chunker.Size = getEnvAsInt("RAGCHAT_CHUNK_SIZE", cfg.Chunker.Size)
	cfg.Chunker.Overlap = getEnvAsInt("RAGCHAT_CHUNK_OVERLAP", cfg.Chunker.Overlap)
	cfg.Retrieval.SearchK = getEnvAsInt("RAGCHAT_SEARCH_K", cfg.Retrieval.SearchK)
	cfg.VectorStore.Type = getEnv("RAGCHAT_VECTOR_STORE", cfg.VectorStore.Type)
	if url, ok := os.LookupEnv("DATABASE_URL"); ok && url != "" {
		if cfg.VectorStore.PGVector == nil {
			cfg.VectorStore.PGVector = &PGVectorConfig{Table: "ragchat_chunks"}
		}
		cfg.VectorStore.PGVector.URL = url
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
