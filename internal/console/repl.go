// Package console runs the line-oriented chat loop on a terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Asker answers one question using the loaded document.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

var (
	youLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	botLabel   = color.New(color.FgCyan, color.Bold).SprintFunc()
	errorLabel = color.New(color.FgRed).SprintFunc()
)

// Run reads questions from in until "exit", EOF or ctx cancellation. Failed
// questions are reported and the loop continues.
func Run(ctx context.Context, in io.Reader, out io.Writer, asker Asker) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	fmt.Fprintln(out, "Type your question and press Enter. Type 'exit' to quit.")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "\n", youLabel("You: "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "exit") {
			break
		}
		if line == "" {
			continue
		}
		answer, err := asker.Ask(ctx, line)
		if err != nil {
			fmt.Fprintln(out, errorLabel("Error: "+err.Error()))
			continue
		}
		fmt.Fprintf(out, "\n%s%s\n", botLabel("Chatbot: "), answer)
	}
	fmt.Fprintln(out, "Goodbye!")
	return scanner.Err()
}
