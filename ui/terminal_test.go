package ui

import (
	"bytes"
	"strings"
	"testing"
)

func newTestTerminal(input string) (*Terminal, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewTerminalWith(strings.NewReader(input), out), out
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"maybe\n", false},
		{"", false}, // EOF defaults to no
	}

	for _, tt := range tests {
		term, _ := newTestTerminal(tt.input)
		if got := term.Confirm("Stage all?"); got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestConfirm_ShowsQuestion(t *testing.T) {
	term, out := newTestTerminal("y\n")
	term.Confirm("Stage all changes?")
	if !strings.Contains(out.String(), "Stage all changes?") {
		t.Errorf("question not shown: %q", out.String())
	}
}

func TestPromptText_AcceptInitial(t *testing.T) {
	term, out := newTestTerminal("\n")
	text, ok := term.PromptText("Commit message", "feat: add X")
	if !ok || text != "feat: add X" {
		t.Errorf("got (%q, %v), want initial accepted", text, ok)
	}
	if !strings.Contains(out.String(), "feat: add X") {
		t.Error("initial suggestion not shown")
	}
}

func TestPromptText_Replace(t *testing.T) {
	term, _ := newTestTerminal("fix: other thing\n")
	text, ok := term.PromptText("Commit message", "feat: add X")
	if !ok || text != "fix: other thing" {
		t.Errorf("got (%q, %v)", text, ok)
	}
}

func TestPromptText_Cancel(t *testing.T) {
	term, _ := newTestTerminal("q\n")
	if _, ok := term.PromptText("Commit message", "feat: add X"); ok {
		t.Error("q should cancel")
	}
}

func TestSelect(t *testing.T) {
	options := []string{"feature/x", "feat/x", "add-x"}

	tests := []struct {
		input   string
		wantIdx int
		wantOK  bool
	}{
		{"\n", 0, true},  // Enter picks the first
		{"1\n", 0, true},
		{"3\n", 2, true},
		{"q\n", 0, false},
		{"0\n", 0, false},
		{"4\n", 0, false},
		{"abc\n", 0, false},
	}

	for _, tt := range tests {
		term, _ := newTestTerminal(tt.input)
		idx, ok := term.Select("Pick a branch name", options)
		if idx != tt.wantIdx || ok != tt.wantOK {
			t.Errorf("Select(%q) = (%d, %v), want (%d, %v)", tt.input, idx, ok, tt.wantIdx, tt.wantOK)
		}
	}
}

func TestSelect_ListsOptions(t *testing.T) {
	term, out := newTestTerminal("1\n")
	term.Select("Pick", []string{"alpha", "beta"})

	s := out.String()
	if !strings.Contains(s, "1. alpha") || !strings.Contains(s, "2. beta") {
		t.Errorf("options not listed: %q", s)
	}
}

func TestHeader(t *testing.T) {
	term, out := newTestTerminal("")
	term.Header("AI Commit Assistant")
	if !strings.Contains(out.String(), "AI Commit Assistant") {
		t.Error("header title missing")
	}
}
