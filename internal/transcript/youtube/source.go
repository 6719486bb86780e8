// Package youtube adapts github.com/kkdai/youtube to transcript.CaptionSource.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	yt "github.com/kkdai/youtube/v2"

	"ragchat/internal/transcript"
)

type Source struct {
	client *yt.Client
	// videos caches metadata so a language fallback does not refetch the watch page.
	videos map[string]*yt.Video
}

func NewSource(timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Source{
		client: &yt.Client{HTTPClient: &http.Client{Timeout: timeout}},
		videos: make(map[string]*yt.Video),
	}
}

func (s *Source) Captions(ctx context.Context, videoID, language string) ([]transcript.Entry, error) {
	video, err := s.video(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if len(video.CaptionTracks) == 0 {
		return nil, transcript.ErrCaptionsDisabled
	}
	code, ok := trackCode(video, language)
	if !ok {
		return nil, fmt.Errorf("%w: %s", transcript.ErrLanguageNotFound, language)
	}
	segments, err := s.client.GetTranscriptCtx(ctx, video, code)
	if errors.Is(err, yt.ErrTranscriptDisabled) {
		return nil, fmt.Errorf("%w: %s", transcript.ErrLanguageNotFound, language)
	}
	if err != nil {
		return nil, err
	}
	entries := make([]transcript.Entry, 0, len(segments))
	for _, seg := range segments {
		entries = append(entries, transcript.Entry{
			Text:     strings.TrimSpace(seg.Text),
			Start:    float64(seg.StartMs) / 1000,
			Duration: float64(seg.Duration) / 1000,
		})
	}
	return entries, nil
}

func (s *Source) video(ctx context.Context, videoID string) (*yt.Video, error) {
	if v, ok := s.videos[videoID]; ok {
		return v, nil
	}
	v, err := s.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("get video %s: %w", videoID, err)
	}
	s.videos[videoID] = v
	return v, nil
}

// trackCode returns the video's own spelling of language, matched case-insensitively.
func trackCode(video *yt.Video, language string) (string, bool) {
	for _, track := range video.CaptionTracks {
		if strings.EqualFold(track.LanguageCode, language) {
			return track.LanguageCode, true
		}
	}
	return "", false
}
