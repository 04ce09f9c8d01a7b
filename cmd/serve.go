package cmd

import (
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytqa/internal"
)

// serveCmd runs the web form
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web form",
	Long: `Serve a single-page form for summarizing or asking about YouTube videos.

Each browser gets its own session: the transcript is fetched once per URL
and reused for every summary or question until the URL changes.
Edits to the config file (prompts, model, temperature) apply without a restart.`,
	Example: `  # Serve on the configured address (default :8501)
  ytqa serve

  # Serve on another port
  ytqa serve --addr localhost:9000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := internal.NewLogger(os.Stderr, config.Verbose)
		if !config.Verbose {
			log.SetLevel(logrus.InfoLevel)
		}

		app, err := newApp(cmd, true,
			internal.WithUI(internal.NewUIManager(true)),
			internal.WithLogger(log),
		)
		if err != nil {
			return err
		}

		config.Watch(func(e fsnotify.Event, next *internal.Config) {
			if err := reloadConfig(cmd, app, next); err != nil {
				log.WithError(err).WithField("file", e.Name).Warn("ignoring config change")
				return
			}
			log.WithField("file", e.Name).Info("config reloaded")
		})

		store := internal.NewSessionStore(config.SessionTTL)
		web, err := internal.NewWebServer(app, store, log)
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = config.ServerAddr
		}
		return web.ListenAndServe(cmd.Context(), addr)
	},
}

// reloadConfig applies an edited config file, keeping command line overrides
func reloadConfig(cmd *cobra.Command, app *internal.App, next *internal.Config) error {
	if err := internal.ApplyFlags(cmd, next, true); err != nil {
		return err
	}
	return app.Reload(next, true)
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8501)")
	internal.AddGenerationFlags(serveCmd)
	internal.AddPunctuationFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}
