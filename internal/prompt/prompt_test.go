package prompt

import (
	"strings"
	"testing"

	"ragchat/internal/domain"
)

func TestBuildLayout(t *testing.T) {
	got := Build("Be brief.", []string{"alpha", "beta"},
		[]domain.Turn{{Question: "hi", Answer: "hello"}, {Question: "who?", Answer: "me"}},
		"what now?")
	want := "Be brief.\n\nContext:\nalpha\n\nbeta\n\nConversation History:\n" +
		"Human: hi\nAssistant: hello\nHuman: who?\nAssistant: me\n" +
		"\nUser Question: what now?\n\nAnswer:"
	if got != want {
		t.Errorf("Build =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildDefaults(t *testing.T) {
	got := Build("", nil, nil, "q")
	if !strings.HasPrefix(got, "Based on the following context") {
		t.Errorf("missing default system prompt: %q", got)
	}
	if strings.Contains(got, "Human:") {
		t.Errorf("empty history rendered turns: %q", got)
	}
	if !strings.HasSuffix(got, "User Question: q\n\nAnswer:") {
		t.Errorf("unexpected tail: %q", got)
	}
}

func TestContexts(t *testing.T) {
	res := []domain.SearchResult{{Chunk: domain.Chunk{Text: "b"}}, {Chunk: domain.Chunk{Text: "a"}}}
	got := Contexts(res)
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("got %v", got)
	}
}
