package summarizer

import (
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	text := "Rockets need fuel. Rockets carry fuel and oxygen to orbit. " +
		"The weather was nice. Fuel tanks on rockets are large!"
	s := NewFrequency()

	tests := []struct {
		name string
		max  int
		want []string
		skip []string
	}{
		{
			name: "keeps top sentences in order",
			max:  2,
			want: []string{"Rockets need fuel.", "Rockets carry fuel and oxygen to orbit."},
			skip: []string{"weather"},
		},
		{
			name: "more than available",
			max:  10,
			want: []string{"Rockets need fuel.", "The weather was nice."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Summarize(text, tt.max)
			if err != nil {
				t.Fatal(err)
			}
			last := -1
			for _, w := range tt.want {
				i := strings.Index(got, w)
				if i < 0 {
					t.Fatalf("summary %q missing %q", got, w)
				}
				if i < last {
					t.Errorf("summary %q not in document order", got)
				}
				last = i
			}
			for _, w := range tt.skip {
				if strings.Contains(got, w) {
					t.Errorf("summary %q should not contain %q", got, w)
				}
			}
		})
	}
}

func TestSummarizeWithoutPunctuation(t *testing.T) {
	got, err := NewFrequency().Summarize("  just some words  ", 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != "just some words" {
		t.Errorf("got %q", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got, err := NewFrequency().Summarize("", 3)
	if err != nil || got != "" {
		t.Errorf("got %q, %v", got, err)
	}
}
