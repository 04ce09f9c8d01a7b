package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytqa/internal"
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize [YouTube URL or ID]",
	Short: "Summarize a YouTube video",
	Example: `  # Summarize a video
  ytqa summarize "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytqa summarize tAP1eZYEuKA

  # Use a different model and temperature
  ytqa summarize tAP1eZYEuKA --model gpt-4o-mini --temperature 0.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd, false)
		if err != nil {
			return err
		}

		transcript, err := app.PunctuatedTranscript(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		summary, err := app.Summarize(cmd.Context(), transcript)
		if err != nil {
			return err
		}

		rendered, err := internal.RenderMarkdown(summary)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	internal.AddGenerationFlags(summarizeCmd)
	internal.AddPunctuationFlags(summarizeCmd)
	rootCmd.AddCommand(summarizeCmd)
}
