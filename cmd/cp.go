package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytqa/internal"
)

// cpCmd copies the transcript to the system clipboard instead of printing to stdout.
var cpCmd = &cobra.Command{
	Use:   "cp [YouTube URL or ID]",
	Short: "Copy the transcript of a YouTube video to the clipboard",
	Example: `  # Copy the punctuated transcript
  ytqa cp "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Copy captions as fetched
  ytqa cp tAP1eZYEuKA --raw`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transcript, err := loadTranscript(cmd, args[0])
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(transcript); err != nil {
			return fmt.Errorf("copying transcript to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "Transcript copied to clipboard")
		}
		return nil
	},
}

func init() {
	cpCmd.Flags().Bool("raw", false, "Skip punctuation restoration")
	internal.AddPunctuationFlags(cpCmd)
	rootCmd.AddCommand(cpCmd)
}
