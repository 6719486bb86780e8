package transcript

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseJSON reads the array written by Render with FormatJSON.
func ParseJSON(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse transcript json: %w", err)
	}
	return entries, nil
}

// ParseSRT reads numbered SRT blocks. Text lines of one block are joined by a space.
//
//	1
//	00:00:00,000 --> 00:00:01,830
//	I'm happy to
//	have you here today.
func ParseSRT(content string) ([]Entry, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	var entries []Entry
	for _, block := range strings.Split(content, "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}
		if isDigitOnly(strings.TrimSpace(lines[0])) {
			lines = lines[1:]
		}
		start, end, ok := strings.Cut(lines[0], "-->")
		if !ok {
			continue
		}
		s, err := parseTimestamp(strings.TrimSpace(start))
		if err != nil {
			return nil, fmt.Errorf("invalid start timestamp: %w", err)
		}
		e, err := parseTimestamp(strings.TrimSpace(end))
		if err != nil {
			return nil, fmt.Errorf("invalid end timestamp: %w", err)
		}
		texts := make([]string, 0, len(lines)-1)
		for _, l := range lines[1:] {
			if l = strings.TrimSpace(l); l != "" {
				texts = append(texts, l)
			}
		}
		entries = append(entries, Entry{
			Text:     strings.Join(texts, " "),
			Start:    s,
			Duration: math.Max(0, e-s),
		})
	}
	return entries, nil
}

// parseTimestamp converts HH:MM:SS,mmm into seconds.
func parseTimestamp(ts string) (float64, error) {
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("expected HH:MM:SS,mmm, got %q", ts)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours: %w", err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes: %w", err)
	}
	sec, msec, ok := strings.Cut(parts[2], ",")
	if !ok {
		return 0, fmt.Errorf("missing milliseconds in %q", ts)
	}
	seconds, err := strconv.Atoi(sec)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds: %w", err)
	}
	millis, err := strconv.Atoi(msec)
	if err != nil {
		return 0, fmt.Errorf("invalid milliseconds: %w", err)
	}
	totalMs := ((hours*60+minutes)*60+seconds)*1000 + millis
	return float64(totalMs) / 1000, nil
}

func isDigitOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
