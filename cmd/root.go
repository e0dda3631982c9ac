package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/pointerbridge/internal/config"
	"github.com/bnema/pointerbridge/internal/logger"
)

var (
	configPath string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "pointerbridge",
		Short: "pointerbridge - native pointer and touch input bridges",
		Long: `pointerbridge translates platform pointer input (X11 XInput2 device events,
Windows WM_POINTER and WM_TOUCH messages) into one normalized event stream.

The CLI drives the X11 bridge directly: list the windows of a process, monitor
their pointer events live, record and replay them, or feed a virtual mouse.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				config.SetConfigPath(configPath)
			}
			if err := config.Init(); err != nil {
				return err
			}

			level := config.Get().Logging.LogLevel
			if logLevel != "" {
				level = logLevel
			}
			if level != "" {
				logger.SetLevel(level)
			}
			return nil
		},
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HOME/.config/pointerbridge/pointerbridge.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(windowsCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(injectCmd)
}
