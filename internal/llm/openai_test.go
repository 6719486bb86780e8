package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type captured struct {
	prompt      string
	temperature *float32
}

func chatServer(t *testing.T, choices []map[string]any, got *captured) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Model       string   `json:"model"`
			Temperature *float32 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Messages) != 1 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if body.Messages[0].Role != "user" {
			http.Error(w, "want a single user message", http.StatusBadRequest)
			return
		}
		got.prompt = body.Messages[0].Content
		got.temperature = body.Temperature
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   body.Model,
			"choices": choices,
		})
	}))
}

func TestComplete(t *testing.T) {
	var got captured
	srv := chatServer(t, []map[string]any{{
		"index":         0,
		"message":       map[string]string{"role": "assistant", "content": "  forty-two \n"},
		"finish_reason": "stop",
	}}, &got)
	defer srv.Close()
	t.Setenv("TEST_LLM_KEY", "k")

	c, err := NewClient(Config{BaseURL: srv.URL + "/v1/", APIKeyEnv: "TEST_LLM_KEY", Model: "test-model", Temperature: 0.7})
	if err != nil {
		t.Fatal(err)
	}
	answer, err := c.Complete(context.Background(), "what is the answer?")
	if err != nil {
		t.Fatal(err)
	}
	if answer != "forty-two" {
		t.Errorf("answer = %q", answer)
	}
	if got.prompt != "what is the answer?" {
		t.Errorf("prompt = %q", got.prompt)
	}
	if got.temperature == nil || *got.temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", got.temperature)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	var got captured
	srv := chatServer(t, []map[string]any{}, &got)
	defer srv.Close()
	t.Setenv("TEST_LLM_KEY", "k")

	c, _ := NewClient(Config{BaseURL: srv.URL + "/v1", APIKeyEnv: "TEST_LLM_KEY"})
	if _, err := c.Complete(context.Background(), "q"); !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("err = %v, want ErrEmptyCompletion", err)
	}
}

func TestCompleteSendsZeroTemperature(t *testing.T) {
	var got captured
	srv := chatServer(t, []map[string]any{{
		"index":         0,
		"message":       map[string]string{"role": "assistant", "content": "ok"},
		"finish_reason": "stop",
	}}, &got)
	defer srv.Close()
	t.Setenv("TEST_LLM_KEY", "k")

	c, err := NewClient(Config{BaseURL: srv.URL + "/v1", APIKeyEnv: "TEST_LLM_KEY", Model: "m", Temperature: 0})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Complete(context.Background(), "hi"); err != nil {
		t.Fatal(err)
	}
	if got.temperature == nil {
		t.Fatal("request body has no temperature field")
	}
	if *got.temperature >= 1e-6 {
		t.Errorf("temperature = %v, want near zero", *got.temperature)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	t.Setenv("TEST_LLM_KEY", "")
	if _, err := NewClient(Config{APIKeyEnv: "TEST_LLM_KEY"}); err == nil {
		t.Fatal("expected error")
	}
}
