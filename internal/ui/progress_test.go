package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"sniper/internal/driver"
)

func TestProgressModelTracksStages(t *testing.T) {
	files := []string{"A.java", "B.java"}
	m := NewProgressModel("sniper print", files, nil).(*progressModel)

	steps := []struct {
		ev     driver.Event
		status string
	}{
		{driver.Event{File: "A.java", Stage: driver.StageLoad, Status: driver.StatusQueued}, "queued"},
		{driver.Event{File: "A.java", Stage: driver.StageParse, Status: driver.StatusWorking}, "parsing"},
		{driver.Event{File: "A.java", Stage: driver.StagePrint, Status: driver.StatusWorking}, "printing"},
		{driver.Event{File: "A.java", Stage: driver.StagePrint, Status: driver.StatusDone}, "done"},
	}
	for _, step := range steps {
		m.Update(eventMsg(step.ev))
		if got := m.rows[0].label(); got != step.status {
			t.Fatalf("after %+v status = %q, want %q", step.ev, got, step.status)
		}
	}
	if got := m.percent(); got != 0.5 {
		t.Fatalf("percent = %v, want 0.5", got)
	}

	m.Update(eventMsg(driver.Event{File: "B.java", Stage: driver.StageParse, Status: driver.StatusError, Err: errors.New("B.java:2:5: syntax error")}))
	view := m.View()
	for _, want := range []string{"syntax error", "[2/2, 1 failed]"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}
	if m.percent() != 1 {
		t.Fatalf("percent = %v, want 1", m.percent())
	}

	_, cmd := m.Update(doneMsg{})
	if cmd == nil {
		t.Fatal("done should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("done should return tea.Quit")
	}
	if !strings.Contains(m.View(), "done: sniper print") {
		t.Fatalf("unexpected header:\n%s", m.View())
	}
}

func TestProgressModelIgnoresUnknownFiles(t *testing.T) {
	m := NewProgressModel("run", []string{"A.java"}, nil).(*progressModel)
	m.Update(eventMsg(driver.Event{File: "Z.java", Stage: driver.StageParse, Status: driver.StatusWorking}))
	if got := m.rows[0].label(); got != "queued" {
		t.Fatalf("status = %q", got)
	}
	m.Update(eventMsg(driver.Event{Stage: driver.StageWrite, Status: driver.StatusWorking}))
	if m.stageLabel != "writing" {
		t.Fatalf("stage label = %q", m.stageLabel)
	}
}

func TestListenForEventCloses(t *testing.T) {
	ch := make(chan driver.Event, 1)
	m := NewProgressModel("run", nil, ch).(*progressModel)
	ch <- driver.Event{File: "A.java", Status: driver.StatusDone}
	close(ch)
	if _, ok := m.listenForEvent()().(eventMsg); !ok {
		t.Fatal("expected event")
	}
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatal("expected done after close")
	}
	if m.View() != "" {
		t.Fatal("empty model renders nothing")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Short.java", 20, "Short.java"},
		{"src/main/java/VeryLong.java", 10, "src/mai..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
