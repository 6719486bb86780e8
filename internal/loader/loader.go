// Package loader reads source documents into memory. Transcript files written
// by yt-transcript are flattened to their caption text.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"ragchat/internal/domain"
	"ragchat/internal/transcript"
)

var ErrUnsupportedFile = errors.New("unsupported file type")

// Load reads the whole file at path. Supported: .txt, .md, .srt and .json transcripts.
func Load(path string) (domain.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md", ".srt", ".json":
	default:
		return domain.Document{}, fmt.Errorf("%w: %s (want .txt, .md, .srt or .json)", ErrUnsupportedFile, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read %s: %w", path, err)
	}

	if !utf8.Valid(data) {
		return domain.Document{}, fmt.Errorf("%w: %s is not valid UTF-8", ErrUnsupportedFile, path)
	}

	content := string(data)
	switch ext {
	case ".srt":
		entries, err := transcript.ParseSRT(content)
		if err != nil {
			return domain.Document{}, fmt.Errorf("parse %s: %w", path, err)
		}
		content = flatten(entries)
	case ".json":
		entries, err := transcript.ParseJSON(data)
		if err != nil {
			return domain.Document{}, fmt.Errorf("parse %s: %w", path, err)
		}
		content = flatten(entries)
	}
	return domain.Document{ID: uuid.NewString(), Path: path, Content: content}, nil
}

func flatten(entries []transcript.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if t := strings.TrimSpace(e.Text); t != "" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, "\n")
}
