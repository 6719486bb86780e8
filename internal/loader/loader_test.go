package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"plain text", "notes.txt", "line one\nline two\n", "line one\nline two\n"},
		{"markdown", "README.MD", "# title", "# title"},
		{
			"srt transcript", "talk.srt",
			"1\n00:00:00,000 --> 00:00:01,500\nhello\n\n2\n00:00:01,500 --> 00:00:03,000\nmulti\nline\n\n",
			"hello\nmulti line",
		},
		{
			"json transcript", "talk.json",
			`[{"text":"first","start":0,"duration":1},{"text":"  ","start":1,"duration":1},{"text":"second","start":2,"duration":1}]`,
			"first\nsecond",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			doc, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if doc.Content != tt.want {
				t.Errorf("Content = %q, want %q", doc.Content, tt.want)
			}
			if doc.Path != path || len(doc.ID) != 36 {
				t.Errorf("doc = %+v", doc)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(writeFile(t, "data.pdf", "x")); !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("pdf err = %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing err = %v", err)
	}
	if _, err := Load(writeFile(t, "latin1.txt", "caf\xe9 cr\xe8me")); !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("latin-1 err = %v", err)
	}
	if _, err := Load(writeFile(t, "bad.json", "{not json")); err == nil {
		t.Error("expected json parse error")
	}
}

func TestLoadAssignsDistinctIDs(t *testing.T) {
	path := writeFile(t, "a.txt", "x")
	a, _ := Load(path)
	b, _ := Load(path)
	if a.ID == b.ID {
		t.Error("expected distinct document IDs")
	}
}
