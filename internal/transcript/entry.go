// Package transcript resolves YouTube videos, fetches their caption tracks and
// serializes them as plain text, SRT or JSON.
package transcript

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidURL is matched by every *InvalidURLError.
	ErrInvalidURL = errors.New("invalid YouTube URL or video ID")
	// ErrTranscriptUnavailable is matched by every *TranscriptUnavailableError.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	ErrUnknownFormat         = errors.New("unknown transcript format")
)

// Entry is one caption line. Start and Duration are in seconds.
type Entry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End returns the time the entry stops being shown.
func (e Entry) End() float64 { return e.Start + e.Duration }

type Format string

const (
	FormatText Format = "text"
	FormatSRT  Format = "srt"
	FormatJSON Format = "json"
)

// ParseFormat accepts text, srt or json in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatSRT, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (want text, srt or json)", ErrUnknownFormat, s)
}

// Extension is the file extension written for the format.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

type InvalidURLError struct {
	Input string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("no video ID found in %q", e.Input)
}

func (e *InvalidURLError) Is(target error) bool { return target == ErrInvalidURL }

// TranscriptUnavailableError reports a video with captions disabled or none
// in any of the requested languages.
type TranscriptUnavailableError struct {
	VideoID   string
	Languages []string
	Err       error
}

func (e *TranscriptUnavailableError) Error() string {
	msg := fmt.Sprintf("no transcript for video %s in languages [%s]", e.VideoID, strings.Join(e.Languages, ", "))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TranscriptUnavailableError) Is(target error) bool { return target == ErrTranscriptUnavailable }

func (e *TranscriptUnavailableError) Unwrap() error { return e.Err }
