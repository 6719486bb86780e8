package transcript

import (
	"context"
	"errors"
	"fmt"
	"log"
)

var (
	// ErrCaptionsDisabled is returned by a CaptionSource when the video has no
	// caption tracks at all.
	ErrCaptionsDisabled = errors.New("captions are disabled for this video")
	// ErrLanguageNotFound is returned by a CaptionSource when no track exists
	// for the requested language.
	ErrLanguageNotFound = errors.New("no captions in requested language")
)

// CaptionSource downloads the caption track of one video in one language.
type CaptionSource interface {
	Captions(ctx context.Context, videoID, language string) ([]Entry, error)
}

var DefaultLanguages = []string{"en"}

type Fetcher struct {
	source CaptionSource
}

func NewFetcher(source CaptionSource) *Fetcher {
	return &Fetcher{source: source}
}

// Fetch tries languages in order and returns the first non-empty transcript.
func (f *Fetcher) Fetch(ctx context.Context, videoID string, languages []string) ([]Entry, error) {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	var last error
	for _, lang := range languages {
		entries, err := f.source.Captions(ctx, videoID, lang)
		switch {
		case errors.Is(err, ErrCaptionsDisabled):
			return nil, &TranscriptUnavailableError{VideoID: videoID, Languages: languages, Err: err}
		case errors.Is(err, ErrLanguageNotFound):
			log.Printf("no %q captions for %s, trying next language", lang, videoID)
			last = err
			continue
		case err != nil:
			return nil, fmt.Errorf("fetch %q captions for %s: %w", lang, videoID, err)
		}
		if len(entries) > 0 {
			return entries, nil
		}
		last = ErrLanguageNotFound
	}
	return nil, &TranscriptUnavailableError{VideoID: videoID, Languages: languages, Err: last}
}
