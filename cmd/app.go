package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rtzll/ytqa/internal"
)

// newApp applies command flags to the loaded config and builds the pipeline.
// web selects the web form's temperature.
func newApp(cmd *cobra.Command, web bool, options ...internal.AppOption) (*internal.App, error) {
	if err := internal.ApplyFlags(cmd, config, web); err != nil {
		return nil, err
	}
	if web {
		options = append(options, internal.WithTemperature(config.WebTemperature))
	}
	return internal.NewApp(config, options...)
}
