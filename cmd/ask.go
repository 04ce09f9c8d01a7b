package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytqa/internal"
)

// askCmd answers a question about a video
var askCmd = &cobra.Command{
	Use:   "ask [YouTube URL or ID] [question]",
	Short: "Answer a question about a YouTube video",
	Example: `  # Ask about a video
  ytqa ask "https://youtu.be/tAP1eZYEuKA" "What are the main points discussed?"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd, false)
		if err != nil {
			return err
		}

		transcript, err := app.PunctuatedTranscript(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		answer, err := app.Answer(cmd.Context(), transcript, args[1])
		if err != nil {
			return err
		}

		rendered, err := internal.RenderMarkdown(answer)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	internal.AddGenerationFlags(askCmd)
	internal.AddPunctuationFlags(askCmd)
	rootCmd.AddCommand(askCmd)
}
