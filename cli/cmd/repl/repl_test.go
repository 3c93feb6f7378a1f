package repl

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/scopelet/lang"
	"github.com/ardnew/scopelet/log"
)

var zeroLogger log.Logger

func TestEvaluate(t *testing.T) {
	m := newModel(t.Context(), testData(), NewHistory(""), zeroLogger)

	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{"Hello, {name}!", "Hello, Ada!", nil},
		{"{.section user}{email}{.end}", "ada@example.com", nil},
		{"{.repeat user.tags}[{@}]{.end}", "[x][y]", nil},
		{"{missing}", "", lang.ErrResolution},
		{"{.section name}", "", lang.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, got, err := m.evaluate(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("evaluate(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("evaluate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExecuteInputRecordsProgram(t *testing.T) {
	m := newModel(t.Context(), testData(), NewHistory(""), zeroLogger)

	m.input.SetValue("{name}")

	m, _ = m.executeInput()
	if m.last == nil {
		t.Fatal("last template not recorded")
	}

	if got := m.programView(); got != "Expand name" {
		t.Errorf("programView() = %q, want %q", got, "Expand name")
	}

	if m.history.Len() != 1 {
		t.Errorf("history Len() = %d, want 1", m.history.Len())
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
}

func TestQuitCommand(t *testing.T) {
	m := newModel(t.Context(), nil, NewHistory(""), zeroLogger)

	m.input.SetValue(":quit")

	m, cmd := m.executeInput()
	if !m.quitting {
		t.Error("quitting = false after :quit")
	}

	if cmd == nil {
		t.Error(":quit returned no command")
	}

	if m.View() != "" {
		t.Errorf("View() after quit = %q, want empty", m.View())
	}
}

func TestCtrlCOnEmptyLineQuits(t *testing.T) {
	m := newModel(t.Context(), nil, NewHistory(""), zeroLogger)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(model).quitting {
		t.Error("Ctrl+C on empty line did not quit")
	}
}

func TestTabCycling(t *testing.T) {
	m := newModel(t.Context(), testData(), NewHistory(""), zeroLogger)

	m.input.SetValue("{user.")
	m.input.SetCursor(6)
	refreshMatches(&m, false)

	m = m.cycle(1)
	if !m.tabActive {
		t.Fatal("tab cycling not active")
	}

	first := m.input.Value()

	m = m.cycle(1)
	second := m.input.Value()

	if first == second {
		t.Errorf("cycling did not change the candidate: %q", first)
	}

	if !strings.HasPrefix(second, "{user.") {
		t.Errorf("completion replaced the parent path: %q", second)
	}

	m = m.cycle(1)
	if got := m.input.Value(); got != first {
		t.Errorf("cycle did not wrap: got %q, want %q", got, first)
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{map[string]any{"a": 1}, "{ 1 keys }"},
		{[]any{1, 2}, "[ 2 items ]"},
		{nil, "null"},
		{"short", "short"},
		{strings.Repeat("x", 50), strings.Repeat("x", 37) + "..."},
		{strings.Repeat("é", 40), strings.Repeat("é", 40)},
		{strings.Repeat("日本", 25), strings.Repeat("日本", 18) + "日..."},
	}

	for _, tt := range tests {
		if got := preview(tt.v); got != tt.want {
			t.Errorf("preview(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
