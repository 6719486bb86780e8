package youtube

import (
	"context"
	"errors"
	"testing"

	yt "github.com/kkdai/youtube/v2"

	"ragchat/internal/transcript"
)

func TestTrackCode(t *testing.T) {
	video := &yt.Video{CaptionTracks: []yt.CaptionTrack{{LanguageCode: "en"}, {LanguageCode: "pt-BR"}}}
	tests := []struct {
		lang   string
		want   string
		wantOK bool
	}{
		{"en", "en", true},
		{"pt-br", "pt-BR", true},
		{"PT-BR", "pt-BR", true},
		{"de", "", false},
	}
	for _, tt := range tests {
		got, ok := trackCode(video, tt.lang)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("trackCode(%q) = %q, %v, want %q, %v", tt.lang, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCaptionsFromCachedVideo(t *testing.T) {
	s := NewSource(0)
	s.videos["noCaptions1"] = &yt.Video{ID: "noCaptions1"}
	s.videos["onlyFrench1"] = &yt.Video{ID: "onlyFrench1", CaptionTracks: []yt.CaptionTrack{{LanguageCode: "fr"}}}

	if _, err := s.Captions(context.Background(), "noCaptions1", "en"); !errors.Is(err, transcript.ErrCaptionsDisabled) {
		t.Errorf("err = %v, want ErrCaptionsDisabled", err)
	}
	if _, err := s.Captions(context.Background(), "onlyFrench1", "en"); !errors.Is(err, transcript.ErrLanguageNotFound) {
		t.Errorf("err = %v, want ErrLanguageNotFound", err)
	}
}
