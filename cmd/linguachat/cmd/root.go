package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "linguachat",
	Short: "LinguaChat message relay",
	Long: `LinguaChat is a chat relay that canonicalizes every message into a
single pivot language before storing it, then pushes it to recipients
who are connected over the live channel.

Available commands:
  serve    Run the HTTP server and live delivery channel

Use "linguachat [command] --help" for more information about a specific command.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
