package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytqa/internal"
)

var (
	config  *internal.Config
	cfgFile string
)

// rootCmd runs the interactive console when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "ytqa",
	Short: "Summarize YouTube videos or ask questions about them",
	Long: `ytqa fetches a YouTube video's captions, restores their punctuation
and uses a chat model to summarize the transcript or answer a question about it.

Run without arguments for the interactive prompt, or use "ytqa serve"
for the web form.`,
	Example: `  # Interactive prompt
  ytqa

  # One-shot summary
  ytqa summarize "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Ask a question
  ytqa ask https://youtu.be/tAP1eZYEuKA "What tools are mentioned?"

  # Web form on :8501
  ytqa serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		return internal.HandleVerboseFlag(cmd, config)
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsole(cmd)
	},
}

// loadConfig reads configuration once flags are parsed
func loadConfig() error {
	if config != nil {
		return nil
	}

	if cfgFile == "" {
		created, err := internal.EnsureDefaultConfig(internal.DefaultConfigDir())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
		} else if created {
			fmt.Fprintf(os.Stderr, "Created default configuration in %s\n", internal.DefaultConfigDir())
		}
	}

	c, err := internal.InitConfig(cfgFile)
	if err != nil {
		return err
	}
	config = c
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		if config != nil {
			if err := internal.CleanupTempDir(config.TempDir); err != nil {
				fmt.Fprintf(os.Stderr, "Error cleaning up temporary files: %v\n", err)
			}
		}
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress status output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is $XDG_CONFIG_HOME/ytqa/config.toml)")
	internal.AddGenerationFlags(rootCmd)
	internal.AddPunctuationFlags(rootCmd)
}
