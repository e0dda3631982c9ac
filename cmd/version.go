package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/pointerbridge/internal/logger"
)

var (
	// Version info, overridden with -ldflags -X at build time
	Version = "0.1.0-dev"
	Commit  string
	Date    string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		logger.Infof("pointerbridge %s", Version)
		logger.Infof("commit: %s", Commit)
		logger.Infof("built: %s", Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
