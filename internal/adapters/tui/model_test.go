package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okian/candidateview/internal/domain/candidate"
	"github.com/okian/candidateview/internal/domain/projection"
)

var records = []candidate.Record{
	{ID: "1", Name: "Ana Lima", Skills: "Go, SQL", YearsOfExperience: 5},
	{ID: "2", Name: "Bruno", Skills: "React, TypeScript", YearsOfExperience: 2},
	{ID: "3", Name: "Carla", Skills: "go, Kubernetes", YearsOfExperience: 8},
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := NewModel(context.Background(), nil)
	next, _ := m.Update(LoadedMsg{Records: records})
	return next.(Model)
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func names(m Model) []string {
	out := make([]string, 0, len(m.Rows()))
	for _, r := range m.Rows() {
		out = append(out, r.Name)
	}
	return out
}

func TestModelLoadsThroughFetch(t *testing.T) {
	called := false
	m := NewModel(context.Background(), func(context.Context) ([]candidate.Record, error) {
		called = true
		return records, nil
	})
	if !strings.Contains(m.View(), "Loading candidates") {
		t.Fatalf("expected loading hint before the first load")
	}

	msg := m.load()()
	if !called {
		t.Fatalf("expected fetch to be called")
	}
	m = send(t, m, msg)
	if got := len(m.Rows()); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
	if !strings.Contains(m.View(), "Showing 3 of 3 candidates") {
		t.Fatalf("expected count line in view:\n%s", m.View())
	}
}

func TestModelKeepsRecordsOnFailedReload(t *testing.T) {
	m := loaded(t)
	m = send(t, m, LoadedMsg{Err: errors.New("connection refused")})

	if got := len(m.Rows()); got != 3 {
		t.Fatalf("expected previous rows to survive, got %d", got)
	}
	if !strings.Contains(m.View(), "Error fetching data: connection refused") {
		t.Fatalf("expected error in view")
	}
}

func TestModelTypingFilters(t *testing.T) {
	m := loaded(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("GO")})

	if m.State().Query != "GO" {
		t.Fatalf("expected query GO, got %q", m.State().Query)
	}
	if got := names(m); strings.Join(got, ",") != "Ana Lima,Carla" {
		t.Fatalf("unexpected rows %v", got)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.State().Query != "" || len(m.Rows()) != 3 {
		t.Fatalf("expected clear to restore all rows, got %q / %d", m.State().Query, len(m.Rows()))
	}
}

func TestModelSortKeysNeedBlurredInput(t *testing.T) {
	m := loaded(t)

	// While typing, "d" is part of the query.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if m.State().Sort != projection.None || m.State().Query != "d" {
		t.Fatalf("expected d to be typed, got %+v", m.State())
	}

	m = send(t, m,
		tea.KeyMsg{Type: tea.KeyCtrlL},
		tea.KeyMsg{Type: tea.KeyEsc},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")},
	)
	if m.State().Sort != projection.Descending {
		t.Fatalf("expected descending, got %v", m.State().Sort)
	}
	if got := names(m); strings.Join(got, ",") != "Carla,Ana Lima,Bruno" {
		t.Fatalf("unexpected order %v", got)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if got := names(m); strings.Join(got, ",") != "Bruno,Ana Lima,Carla" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestModelViewShowsChipsAndActiveSort(t *testing.T) {
	m := loaded(t)
	m.SetSize(120, 40)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})

	view := m.View()
	for _, want := range []string{"Candidate List Viewer", "Go, SQL", "React, TypeScript", "Sort (Asc)", "Sort (Desc)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestModelQuit(t *testing.T) {
	m := loaded(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
