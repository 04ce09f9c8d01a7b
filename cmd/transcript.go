package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytqa/internal"
)

// transcriptCmd prints a video's transcript
var transcriptCmd = &cobra.Command{
	Use:   "transcript [YouTube URL or ID]",
	Short: "Print the punctuated transcript of a YouTube video",
	Example: `  # Print the punctuated transcript
  ytqa transcript "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Captions as fetched, without punctuation restoration
  ytqa transcript tAP1eZYEuKA --raw

  # Save to file
  ytqa transcript tAP1eZYEuKA -o transcript.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transcript, err := loadTranscript(cmd, args[0])
		if err != nil {
			return err
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, []byte(transcript+"\n"), 0644)
		}

		fmt.Fprintln(cmd.OutOrStdout(), transcript)
		return nil
	},
}

// loadTranscript fetches the transcript for ref, punctuated unless --raw is set
func loadTranscript(cmd *cobra.Command, ref string) (string, error) {
	app, err := newApp(cmd, false)
	if err != nil {
		return "", err
	}

	raw, _ := cmd.Flags().GetBool("raw")
	if raw {
		return app.Transcript(cmd.Context(), ref)
	}
	return app.PunctuatedTranscript(cmd.Context(), ref)
}

func init() {
	transcriptCmd.Flags().Bool("raw", false, "Skip punctuation restoration")
	transcriptCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	internal.AddPunctuationFlags(transcriptCmd)
	rootCmd.AddCommand(transcriptCmd)
}
