// Package ui implements the terminal presentation layer: styled output,
// input prompts, and clipboard access.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	promptStyle  = lipgloss.NewStyle().Bold(true)
)

const ruleWidth = 60

// Terminal presents output and reads input over injected streams.
type Terminal struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewTerminal creates a Terminal over stdin/stdout.
func NewTerminal() *Terminal {
	return NewTerminalWith(os.Stdin, os.Stdout)
}

// NewTerminalWith creates a Terminal over custom streams (for testing).
func NewTerminalWith(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{reader: bufio.NewReader(r), writer: w}
}

// Header prints a title between horizontal rules.
func (t *Terminal) Header(title string) {
	rule := ruleStyle.Render(strings.Repeat("=", ruleWidth))
	fmt.Fprintf(t.writer, "\n%s\n%s\n%s\n", rule, headerStyle.Render(title), rule)
}

// Info prints a neutral informational line.
func (t *Terminal) Info(msg string) {
	fmt.Fprintln(t.writer, infoStyle.Render(msg))
}

// Success prints a success line.
func (t *Terminal) Success(msg string) {
	fmt.Fprintln(t.writer, successStyle.Render(msg))
}

// Warn prints a warning line.
func (t *Terminal) Warn(msg string) {
	fmt.Fprintln(t.writer, warnStyle.Render(msg))
}

// Error prints an error line.
func (t *Terminal) Error(msg string) {
	fmt.Fprintln(t.writer, errorStyle.Render(msg))
}

// Progress prints a progress line. The flows are sequential and
// non-cancellable, so there is no spinner to drive.
func (t *Terminal) Progress(msg string) {
	fmt.Fprintln(t.writer, infoStyle.Render(msg))
}

// Confirm asks a yes/no question. Any answer starting with "y" is yes;
// a read error defaults to no.
func (t *Terminal) Confirm(question string) bool {
	fmt.Fprintf(t.writer, "%s (y/n): ", promptStyle.Render(question))

	answer, err := t.reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}

// PromptText shows a suggested value and reads a replacement. An empty
// answer accepts the suggestion; "q" cancels.
func (t *Terminal) PromptText(label, initial string) (string, bool) {
	fmt.Fprintf(t.writer, "\n%s:\n  %s\n", promptStyle.Render(label), successStyle.Render(initial))
	fmt.Fprint(t.writer, "Press Enter to accept, type a replacement, or q to cancel: ")

	answer, err := t.reader.ReadString('\n')
	if err != nil {
		return "", false
	}
	answer = strings.TrimSpace(answer)

	switch answer {
	case "":
		return initial, true
	case "q", "Q":
		return "", false
	default:
		return answer, true
	}
}

// Select presents numbered options and reads a choice. An empty answer
// picks the first option; anything unparseable or out of range cancels.
func (t *Terminal) Select(label string, options []string) (int, bool) {
	fmt.Fprintf(t.writer, "\n%s:\n", promptStyle.Render(label))
	for i, opt := range options {
		fmt.Fprintf(t.writer, "  %d. %s\n", i+1, opt)
	}
	fmt.Fprintf(t.writer, "Choice [1-%d, Enter for 1, q to cancel]: ", len(options))

	answer, err := t.reader.ReadString('\n')
	if err != nil {
		return 0, false
	}
	answer = strings.TrimSpace(answer)

	if answer == "" {
		return 0, true
	}
	if answer == "q" || answer == "Q" {
		return 0, false
	}

	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(options) {
		return 0, false
	}
	return n - 1, true
}
