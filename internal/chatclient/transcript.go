package chatclient

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// Transcript is the visible side of a conversation.
type Transcript interface {
	AppendUser(text string)
	AppendAssistant(text string)
	ShowTyping()
	RemoveTyping()
}

// TerminalTranscript writes the conversation to a terminal or any writer.
// When Styled is set, assistant replies are rendered as markdown and the
// typing indicator is drawn on a line that is cleared in place.
type TerminalTranscript struct {
	mu      sync.Mutex
	out     io.Writer
	botName string
	styled  bool
	style   string
	typing  bool
}

// NewTerminalTranscript writes to out. botName labels assistant lines.
func NewTerminalTranscript(out io.Writer, botName string, styled bool) *TerminalTranscript {
	if botName == "" {
		botName = "Assistant"
	}
	return &TerminalTranscript{out: out, botName: botName, styled: styled, style: "dark"}
}

// IsTerminal reports whether fd is an interactive terminal.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (t *TerminalTranscript) AppendUser(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "You: %s\n", text)
}

func (t *TerminalTranscript) AppendAssistant(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.styled {
		rendered, err := glamour.Render(text, t.style)
		if err == nil {
			fmt.Fprintf(t.out, "%s:\n%s\n", t.botName, strings.TrimRight(rendered, "\n"))
			return
		}
	}
	fmt.Fprintf(t.out, "%s: %s\n\n", t.botName, text)
}

func (t *TerminalTranscript) ShowTyping() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.typing = true
	if t.styled {
		fmt.Fprintf(t.out, "%s is typing...", t.botName)
	}
}

func (t *TerminalTranscript) RemoveTyping() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.typing {
		return
	}
	t.typing = false
	if t.styled {
		fmt.Fprint(t.out, "\r\033[K")
	}
}

// Typing reports whether the indicator is currently shown.
func (t *TerminalTranscript) Typing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.typing
}
