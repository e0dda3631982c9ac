package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgramConfig holds configuration for running a UI program
type ProgramConfig struct {
	AltScreen bool
	// KillTimeout bounds how long Run waits for the program after asking
	// it to quit.
	KillTimeout time.Duration
}

// DefaultProgramConfig returns default configuration
func DefaultProgramConfig() ProgramConfig {
	return ProgramConfig{
		AltScreen:   true,
		KillTimeout: 2 * time.Second,
	}
}

// ProgramRunner manages the lifecycle of a Bubble Tea program. The program
// exists from construction, so Send can be handed out before Run; it blocks
// until Run has started.
type ProgramRunner struct {
	config  ProgramConfig
	program *tea.Program
	done    chan struct{} // Closed when the program has exited
}

// NewProgramRunner creates a runner for model. Extra options are appended
// to the ones derived from config.
func NewProgramRunner(model tea.Model, config ProgramConfig, extra ...tea.ProgramOption) *ProgramRunner {
	var opts []tea.ProgramOption
	if config.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	opts = append(opts, extra...)

	return &ProgramRunner{
		config:  config,
		program: tea.NewProgram(model, opts...),
		done:    make(chan struct{}),
	}
}

// Run blocks until the program exits or ctx is done. On cancellation the
// program is asked to quit, then killed after KillTimeout.
func (r *ProgramRunner) Run(ctx context.Context) error {
	defer close(r.done)

	errCh := make(chan error, 1)
	go func() {
		_, err := r.program.Run()
		errCh <- err
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		r.program.Quit()
	}

	timeout := r.config.KillTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	select {
	case err := <-errCh:
		return err
	case <-time.After(timeout):
		// Force kill the program if it's not responding
		r.program.Kill()
		<-errCh
		return nil
	}
}

// Send sends a message to the running program. After the program has
// exited it returns immediately.
func (r *ProgramRunner) Send(msg tea.Msg) {
	r.program.Send(msg)
}

// Quit asks the program to exit
func (r *ProgramRunner) Quit() {
	r.program.Quit()
}

// Done returns a channel that's closed when Run returns
func (r *ProgramRunner) Done() <-chan struct{} {
	return r.done
}
