package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ChatPort is the TUI-facing subset of the chat service.
type ChatPort interface {
	Ask(ctx context.Context, question string) (string, error)
}

type answerMsg struct {
	question string
	answer   string
	err      error
}

type line struct {
	speaker string
	text    string
}

// Model is the Bubble Tea model of the chat screen.
type Model struct {
	ctx      context.Context
	service  ChatPort
	input    textinput.Model
	viewport viewport.Model
	lines    []line
	summary  string
	status   string
	waiting  bool
	ready    bool
}

// New creates a chat model. summary is shown under the header.
func New(ctx context.Context, service ChatPort, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "You: "
	ti.Placeholder = "Ask about the document, 'exit' to quit"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{ctx: ctx, service: service, input: ti, viewport: vp, summary: summary, status: "Document loaded. Ask a question."}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header+summary, status, input, spacer
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-ch)
		m.refresh()
		return m, nil
	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			m.lines = append(m.lines, line{speaker: "Error", text: msg.err.Error()})
		} else {
			m.status = fmt.Sprintf("Answered %q", msg.question)
			m.lines = append(m.lines, line{speaker: "Chatbot", text: msg.answer})
		}
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			q := strings.TrimSpace(m.input.Value())
			if strings.EqualFold(q, "exit") {
				return m, tea.Quit
			}
			if q == "" || m.waiting {
				return m, nil
			}
			m.input.Reset()
			m.waiting = true
			m.status = "Thinking..."
			m.lines = append(m.lines, line{speaker: "You", text: q})
			m.refresh()
			return m, m.ask(q)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) ask(q string) tea.Cmd {
	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		answer, err := svc.Ask(ctx, q)
		return answerMsg{question: q, answer: answer, err: err}
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("RAG Chat")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	chat := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + summary + "\n" + chat + "\n" + input + "\n" + status
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderLines())
	m.viewport.GotoBottom()
}

func (m Model) renderLines() string {
	if len(m.lines) == 0 {
		return "No messages yet."
	}
	width := max(10, m.viewport.Width-4)
	parts := make([]string, len(m.lines))
	for i, l := range m.lines {
		style, ok := speakerStyles[l.speaker]
		if !ok {
			style = lipgloss.NewStyle()
		}
		parts[i] = style.Render(l.speaker+": ") + lipgloss.NewStyle().Width(width).Render(l.text)
	}
	return strings.Join(parts, "\n\n")
}

var (
	chatBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	speakerStyles = map[string]lipgloss.Style{
		"You":     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		"Chatbot": lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		"Error":   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)
