package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bnema/pointerbridge/internal/config"
	"github.com/bnema/pointerbridge/internal/ui"
	"github.com/bnema/pointerbridge/internal/x11"
)

var windowsPID uint64

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List the X11 windows owned by a process",
	Long: `Walk the window tree from the root and list every window whose _NET_WM_PID
matches the given process id. The ids can be passed to 'monitor --window'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if windowsPID == 0 {
			return fmt.Errorf("--pid is required")
		}

		sys, err := x11.NewSystem(x11Options(config.Get(), nil))
		if err != nil {
			return fmt.Errorf("failed to open X11 system: %w", err)
		}
		defer sys.Close()

		windows, err := sys.WindowsOfProcess(windowsPID)
		if err != nil {
			return fmt.Errorf("failed to list windows: %w", err)
		}

		renderWindows(cmd.OutOrStdout(), windowsPID, windows)
		return nil
	},
}

func init() {
	windowsCmd.Flags().Uint64Var(&windowsPID, "pid", 0, "process id to look up")
}

func renderWindows(w io.Writer, pid uint64, windows []x11.Window) {
	if len(windows) == 0 {
		fmt.Fprintf(w, "%s No windows found for pid %d\n", ui.IconWarning, pid)
		return
	}

	rows := make([][]string, 0, len(windows))
	for _, win := range windows {
		rows = append(rows, []string{
			fmt.Sprintf("0x%x", uint64(win)),
			fmt.Sprintf("%d", uint64(win)),
			fmt.Sprintf("%d", pid),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ui.ColorSubtle)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return lipgloss.NewStyle().
					Foreground(ui.ColorPrimary).
					Bold(true).
					Padding(0, 1)
			case col == 0:
				return lipgloss.NewStyle().
					Foreground(ui.ColorInfo).
					Padding(0, 1)
			default:
				return lipgloss.NewStyle().
					Foreground(ui.ColorText).
					Padding(0, 1)
			}
		}).
		Headers("WINDOW", "DECIMAL", "PID").
		Rows(rows...)

	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d window(s)\n", len(windows))
}
