package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddGenerationFlags adds flags that override the chat model settings
func AddGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "Model to use for summaries and answers")
	cmd.Flags().Float64P("temperature", "t", -1, "Sampling temperature (default from config)")
}

// AddPunctuationFlags adds flags for the restoration stage
func AddPunctuationFlags(cmd *cobra.Command) {
	cmd.Flags().String("punctuation", "", "Punctuation backend: inference, llm or none (default from config)")
}

// ApplyFlags copies explicitly set flags onto config. web selects which
// temperature the --temperature flag overrides.
func ApplyFlags(cmd *cobra.Command, config *Config, web bool) error {
	if f := cmd.Flags().Lookup("model"); f != nil && f.Changed {
		config.Model = f.Value.String()
	}

	if f := cmd.Flags().Lookup("temperature"); f != nil && f.Changed {
		t, err := cmd.Flags().GetFloat64("temperature")
		if err != nil {
			return fmt.Errorf("failed to get temperature flag: %w", err)
		}
		if web {
			config.WebTemperature = t
		} else {
			config.ConsoleTemperature = t
		}
	}

	if f := cmd.Flags().Lookup("punctuation"); f != nil && f.Changed {
		config.PunctuationBackend = f.Value.String()
	}
	return nil
}

// HandleVerboseFlag processes the --verbose and --quiet flags
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if verbose {
		config.Verbose = true
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if quiet {
		config.Quiet = true
	}
	return nil
}
