package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/pointerbridge/internal/config"
	"github.com/bnema/pointerbridge/internal/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pointerbridge configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		logger.Info("Current Configuration:")
		logger.Infof("Config file: %s\n", config.GetConfigPath())

		logger.Info("[x11]")
		display := cfg.X11.Display
		if display == "" {
			display = "$DISPLAY"
		}
		logger.Infof("  Display: %s", display)
		logger.Infof("  Device Set: %s", cfg.X11.DeviceSet)

		logger.Info("\n[pump]")
		logger.Infof("  Frame Guard: %v", cfg.Pump.FrameGuard)
		logger.Infof("  Interval: %d ms", cfg.Pump.IntervalMS)

		logger.Info("\n[screen]")
		if cfg.Screen.Configured() {
			logger.Infof("  Size: %dx%d", cfg.Screen.Width, cfg.Screen.Height)
			logger.Infof("  Offset: %.2f, %.2f", cfg.Screen.OffsetX, cfg.Screen.OffsetY)
			logger.Infof("  Scale: %.2f, %.2f", cfg.Screen.ScaleX, cfg.Screen.ScaleY)
		} else {
			logger.Info("  Not configured (handlers keep default params)")
		}

		logger.Info("\n[windows]")
		logger.Infof("  API: %s", cfg.Windows.API)
		logger.Infof("  Legacy Up As Leave: %v", cfg.Windows.LegacyUpAsLeave)

		logger.Info("\n[mapper]")
		logger.Infof("  Drop Unconfigured: %v", cfg.Mapper.DropUnconfigured)

		if cfg.Record.Path != "" {
			logger.Info("\n[record]")
			logger.Infof("  Path: %s", cfg.Record.Path)
		}

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.GetConfigPath()
		if _, err := os.Stat(configPath); err == nil {
			logger.Infof("Configuration file already exists at: %s", configPath)

			force, _ := cmd.Flags().GetBool("force")
			if !force {
				logger.Info("Use --force to overwrite")
				return nil
			}
		}

		if err := config.Save(); err != nil {
			return err
		}

		logger.Infof("Configuration initialized at: %s", configPath)
		logger.Info("Use 'pointerbridge config show' to view current settings")
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(config.GetConfigPath())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().Bool("force", false, "Force overwrite existing configuration")
}
