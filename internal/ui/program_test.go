package ui

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type quitModel struct {
	quitOnInit bool
	got        []tea.Msg
}

func (m *quitModel) Init() tea.Cmd {
	if m.quitOnInit {
		return tea.Quit
	}
	return nil
}

func (m *quitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s, ok := msg.(string); ok {
		m.got = append(m.got, s)
		if s == "stop" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *quitModel) View() string { return "test" }

func testRunner(m tea.Model) *ProgramRunner {
	var in, out bytes.Buffer
	cfg := ProgramConfig{KillTimeout: time.Second}
	return NewProgramRunner(m, cfg, tea.WithInput(&in), tea.WithOutput(&out))
}

func TestProgramRunnerExitsWithModel(t *testing.T) {
	r := testRunner(&quitModel{quitOnInit: true})

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	select {
	case <-r.Done():
	default:
		t.Error("Done should be closed after Run returns")
	}
}

func TestProgramRunnerSend(t *testing.T) {
	m := &quitModel{}
	r := testRunner(m)

	go func() {
		r.Send("hello")
		r.Send("stop")
	}()

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(m.got) != 2 || m.got[0] != "hello" {
		t.Errorf("model received %v", m.got)
	}
}

func TestProgramRunnerContextCancel(t *testing.T) {
	r := testRunner(&quitModel{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
