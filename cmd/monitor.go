package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/bnema/pointerbridge/internal/config"
	"github.com/bnema/pointerbridge/internal/logger"
	"github.com/bnema/pointerbridge/internal/pointer"
	"github.com/bnema/pointerbridge/internal/record"
	"github.com/bnema/pointerbridge/internal/ui"
	"github.com/bnema/pointerbridge/internal/x11"
)

var (
	monitorPID     uint64
	monitorWindows []string
	monitorTUI     bool
	monitorRecord  string
	monitorPick    bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Print pointer events of X11 windows as they arrive",
	Long: `Subscribe to XInput2 pointer and touch events on one or more windows and
print the normalized events. Windows are given with --window (decimal or 0x hex)
or found with --pid. Use --record to save the stream for 'replay'.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().Uint64Var(&monitorPID, "pid", 0, "monitor every window of this process")
	monitorCmd.Flags().StringArrayVarP(&monitorWindows, "window", "w", nil, "window id to monitor (repeatable)")
	monitorCmd.Flags().BoolVar(&monitorTUI, "tui", false, "show a live terminal UI")
	monitorCmd.Flags().StringVar(&monitorRecord, "record", "", "write events to this file")
	monitorCmd.Flags().BoolVar(&monitorPick, "pick", false, "choose interactively among the windows of --pid")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	windows, err := parseWindowIDs(monitorWindows)
	if err != nil {
		return err
	}
	if len(windows) == 0 && monitorPID == 0 {
		return fmt.Errorf("give at least one --window or a --pid")
	}

	// The TUI owns the terminal; diagnostics go to the model instead
	var pending []ui.LogMsg
	forward := func(msg ui.LogMsg) { pending = append(pending, msg) }
	onMessage := func(severity logger.Severity, text string) {
		forward(ui.LogMsg{Severity: severity, Text: text})
	}
	if monitorTUI {
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(os.Stderr)
	} else {
		onMessage = nil
	}

	sys, err := x11.NewSystem(x11Options(cfg, onMessage))
	if err != nil {
		return fmt.Errorf("failed to open X11 system: %w", err)
	}
	defer sys.Close()

	if monitorPID != 0 {
		found, err := resolveProcessWindows(sys, monitorPID, monitorPick)
		if err != nil {
			return err
		}
		windows = mergeWindows(windows, found)
	}
	if len(windows) == 0 {
		return fmt.Errorf("no windows to monitor")
	}

	recPath := monitorRecord
	if recPath == "" {
		recPath = cfg.Record.Path
	}
	rec, closeRec, err := openRecording(recPath)
	if err != nil {
		return err
	}
	defer closeRec()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	interval := time.Duration(cfg.Pump.IntervalMS) * time.Millisecond

	if !monitorTUI {
		out := cmd.OutOrStdout()
		sink := func(msg ui.EventMsg) {
			fmt.Fprintln(out, ui.FormatEvent(msg))
		}
		if err := subscribeWindows(sys, windows, cfg.Screen, rec, sink); err != nil {
			return err
		}
		logger.Infof("Monitoring %d window(s), press Ctrl+C to stop", len(windows))
		return runPump(ctx, sys, interval)
	}

	model := ui.NewMonitorModel(ui.MonitorConfig{
		Windows:   windowIDs(windows),
		Recording: recPath,
	})

	// Send blocks until the program runs, so the pump only starts once the
	// runner exists and events are handed over through it.
	runner := ui.NewProgramRunner(model, ui.DefaultProgramConfig())
	sink := func(msg ui.EventMsg) { runner.Send(msg) }
	if err := subscribeWindows(sys, windows, cfg.Screen, rec, sink); err != nil {
		return err
	}
	for _, msg := range pending {
		model.Update(msg)
	}
	forward = func(msg ui.LogMsg) { runner.Send(msg) }

	pumpCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	pumpErr := make(chan error, 1)
	go func() {
		pumpErr <- runPump(pumpCtx, sys, interval)
		runner.Quit()
	}()

	runErr := runner.Run(ctx)
	cancel()
	if err := <-pumpErr; err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("monitor UI failed: %w", runErr)
	}
	return nil
}

// subscribeWindows creates one handler per window. Every
// event goes to the recorder, when there is one, and then to sink.
func subscribeWindows(sys *x11.System, windows []x11.Window, screen config.ScreenConfig, rec *record.Writer, sink func(ui.EventMsg)) error {
	for _, w := range windows {
		window := uint64(w)
		h, err := sys.CreateHandler(w, func(ev pointer.Event) {
			msg := ui.EventMsg{Window: window, Time: time.Now(), Event: ev}
			if rec != nil {
				if err := rec.Write(record.Entry{Time: msg.Time, Window: window, Event: ev}); err != nil {
					logger.Warnf("Failed to record event: %v", err)
				}
			}
			sink(msg)
		})
		if err != nil {
			return fmt.Errorf("failed to create handler for window 0x%x: %w", window, err)
		}
		applyScreen(h, screen)
	}
	return nil
}

func resolveProcessWindows(sys *x11.System, pid uint64, pick bool) ([]x11.Window, error) {
	found, err := sys.WindowsOfProcess(pid)
	if err != nil {
		return nil, fmt.Errorf("failed to list windows of pid %d: %w", pid, err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no windows found for pid %d", pid)
	}
	if !pick || len(found) == 1 {
		return found, nil
	}

	options := make([]huh.Option[uint64], len(found))
	for i, w := range found {
		options[i] = huh.NewOption(fmt.Sprintf("0x%x", uint64(w)), uint64(w))
	}

	var selected []uint64
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[uint64]().
				Title("Select Windows").
				Description(fmt.Sprintf("Windows owned by pid %d", pid)).
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("window selection cancelled: %w", err)
	}

	picked := make([]x11.Window, len(selected))
	for i, id := range selected {
		picked[i] = x11.Window(id)
	}
	return picked, nil
}

func mergeWindows(a, b []x11.Window) []x11.Window {
	seen := make(map[x11.Window]bool, len(a)+len(b))
	merged := make([]x11.Window, 0, len(a)+len(b))
	for _, w := range append(append([]x11.Window{}, a...), b...) {
		if !seen[w] {
			seen[w] = true
			merged = append(merged, w)
		}
	}
	return merged
}

func windowIDs(windows []x11.Window) []uint64 {
	ids := make([]uint64, len(windows))
	for i, w := range windows {
		ids[i] = uint64(w)
	}
	return ids
}

// openRecording opens path for writing. An empty path disables recording
// and returns a nil writer.
func openRecording(path string) (*record.Writer, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create recording: %w", err)
	}
	return record.NewWriter(f), func() {
		if err := f.Close(); err != nil {
			logger.Warnf("Failed to close recording: %v", err)
		}
	}, nil
}
