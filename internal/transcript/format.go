package transcript

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// Render serializes entries in the given format.
func Render(entries []Entry, format Format) (string, error) {
	switch format {
	case FormatText:
		lines := make([]string, len(entries))
		for i, e := range entries {
			lines[i] = e.Text
		}
		return strings.Join(lines, "\n"), nil
	case FormatSRT:
		var b strings.Builder
		for i, e := range entries {
			fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, FormatTimestamp(e.Start), FormatTimestamp(e.End()), e.Text)
		}
		return b.String(), nil
	case FormatJSON:
		if entries == nil {
			entries = []Entry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// FormatTimestamp renders seconds as an SRT timestamp HH:MM:SS,mmm.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int64(math.Round(seconds * 1000))
	h := ms / 3_600_000
	ms %= 3_600_000
	m := ms / 60_000
	ms %= 60_000
	s := ms / 1000
	ms %= 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// OutputPath returns path, or transcript.<ext> when path is empty. A path
// without an extension gets the format's extension appended.
func OutputPath(path string, format Format) string {
	if path == "" {
		return "transcript." + format.Extension()
	}
	if filepath.Ext(path) == "" {
		return path + "." + format.Extension()
	}
	return path
}

func Write(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
