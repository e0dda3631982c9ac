package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/pointerbridge/internal/inject"
	"github.com/bnema/pointerbridge/internal/logger"
)

var (
	injectClicks int
	injectSquare int32
)

var injectCmd = &cobra.Command{
	Use:   "inject",
	Short: "Drive a virtual mouse to generate test input",
	Long: `Create a uinput virtual mouse and move it around a square, clicking at each
corner. Useful to check a monitored window receives events without touching
the real mouse. Requires write access to /dev/uinput.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if injectSquare <= 0 {
			return fmt.Errorf("--square must be positive")
		}

		injector, err := inject.NewVirtualMouse("pointerbridge-inject")
		if err != nil {
			return err
		}
		defer injector.Close()

		// Give the compositor time to pick up the new device
		time.Sleep(500 * time.Millisecond)

		if err := driveSquare(injector, injectSquare, injectClicks); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Injection complete")
		return nil
	},
}

func init() {
	injectCmd.Flags().IntVar(&injectClicks, "clicks", 4, "number of corners to click")
	injectCmd.Flags().Int32Var(&injectSquare, "square", 100, "side of the square in pixels")
}

type squareDriver interface {
	Move(dx, dy int32) error
	Click() error
}

// driveSquare walks the four sides of a square and clicks at the first
// clicks corners.
func driveSquare(d squareDriver, side int32, clicks int) error {
	moves := [][2]int32{{side, 0}, {0, side}, {-side, 0}, {0, -side}}
	for i, m := range moves {
		logger.Debugf("Moving by (%d, %d)", m[0], m[1])
		if err := d.Move(m[0], m[1]); err != nil {
			return fmt.Errorf("failed to move: %w", err)
		}
		if i < clicks {
			if err := d.Click(); err != nil {
				return fmt.Errorf("failed to click: %w", err)
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return nil
}
