package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rtzll/ytqa/internal"
)

// consoleCmd is the explicit form of running ytqa without arguments
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Prompt for a video, then summarize it or answer a question",
	Example: `  # Same as running ytqa without arguments
  ytqa console`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsole(cmd)
	},
}

func runConsole(cmd *cobra.Command) error {
	app, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	return internal.NewConsole(app, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
}

func init() {
	internal.AddGenerationFlags(consoleCmd)
	internal.AddPunctuationFlags(consoleCmd)
	rootCmd.AddCommand(consoleCmd)
}
