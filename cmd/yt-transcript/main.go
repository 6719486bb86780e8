package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"ragchat/internal/transcript"
	"ragchat/internal/transcript/youtube"
)

// languageList collects -l values; each may itself be a comma list.
type languageList []string

func (l *languageList) String() string { return strings.Join(*l, ",") }

func (l *languageList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func main() {
	_ = godotenv.Load()

	var (
		languages languageList
		format    string
		output    string
		timeout   time.Duration
	)
	flag.Var(&languages, "language", "Transcript language code(s), comma separated or repeated (default: $YT_TRANSCRIPT_LANGUAGES or en)")
	flag.Var(&languages, "l", "Shorthand for --language")
	flag.StringVar(&format, "format", "text", "Output format: text, srt or json")
	flag.StringVar(&format, "f", "text", "Shorthand for --format")
	flag.StringVar(&output, "output", "", "Output file (default: transcript.txt/srt/json)")
	flag.StringVar(&output, "o", "", "Shorthand for --output")
	flag.DurationVar(&timeout, "timeout", envDuration("YT_TRANSCRIPT_TIMEOUT", 30*time.Second), "HTTP timeout (env YT_TRANSCRIPT_TIMEOUT)")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: yt-transcript [flags] <youtube-url-or-id>")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if len(languages) == 0 {
		_ = languages.Set(os.Getenv("YT_TRANSCRIPT_LANGUAGES"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flag.Arg(0), languages, format, output, timeout); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, input string, languages []string, format, output string, timeout time.Duration) error {
	f, err := transcript.ParseFormat(format)
	if err != nil {
		return err
	}
	id, err := transcript.ResolveVideoID(input)
	if err != nil {
		return err
	}
	fmt.Printf("Extracting transcript for video ID: %s\n", id)

	entries, err := transcript.NewFetcher(youtube.NewSource(timeout)).Fetch(ctx, id, languages)
	if err != nil {
		return err
	}
	content, err := transcript.Render(entries, f)
	if err != nil {
		return err
	}
	path := transcript.OutputPath(output, f)
	if err := transcript.Write(path, content); err != nil {
		return err
	}
	color.New(color.FgGreen).Printf("Transcript saved to %s\n", path)
	return nil
}
