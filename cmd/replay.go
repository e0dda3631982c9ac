package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/pointerbridge/internal/inject"
	"github.com/bnema/pointerbridge/internal/logger"
	"github.com/bnema/pointerbridge/internal/pointer"
	"github.com/bnema/pointerbridge/internal/record"
	"github.com/bnema/pointerbridge/internal/ui"
)

var (
	replayInject bool
	replaySpeed  float64
)

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Print or re-inject a recorded event stream",
	Long: `Read a recording made with 'monitor --record' and print its events. With
--inject, mouse events are replayed through a uinput virtual mouse at the
recorded pace (scaled by --speed). Requires write access to /dev/uinput.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if replaySpeed <= 0 {
			return fmt.Errorf("--speed must be positive")
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open recording: %w", err)
		}
		defer f.Close()

		var apply func(pointer.Event) error
		if replayInject {
			injector, err := inject.NewVirtualMouse("pointerbridge-replay")
			if err != nil {
				return err
			}
			defer injector.Close()
			apply = injector.Apply
		}

		n, err := replayEntries(cmd.OutOrStdout(), record.NewReader(f), apply, replaySpeed)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d event(s) replayed\n", ui.IconSuccess, n)
		return nil
	},
}

func init() {
	replayCmd.Flags().BoolVar(&replayInject, "inject", false, "inject mouse events through a virtual mouse")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1, "replay speed multiplier when injecting")
}

// replayEntries prints every entry of r. When apply is set it also feeds
// mouse events to it, sleeping between entries to keep the recorded pace.
func replayEntries(out io.Writer, r *record.Reader, apply func(pointer.Event) error, speed float64) (int, error) {
	var (
		count int
		last  time.Time
	)
	for {
		entry, err := r.Next()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("failed to read entry %d: %w", count+1, err)
		}
		count++

		fmt.Fprintln(out, ui.FormatEvent(ui.EventMsg{Window: entry.Window, Time: entry.Time, Event: entry.Event}))

		if apply == nil || entry.Event.Type != pointer.TypeMouse {
			continue
		}
		if !last.IsZero() && entry.Time.After(last) {
			time.Sleep(time.Duration(float64(entry.Time.Sub(last)) / speed))
		}
		last = entry.Time
		if err := apply(entry.Event); err != nil {
			logger.Warnf("Failed to inject event %d: %v", count, err)
		}
	}
}
