package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rtzll/ytqa/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server exposing transcripts, summaries and answers",
	Long: `Run a Model Context Protocol (MCP) server that exposes ytqa as tools.

The MCP server provides three tools:
- get_transcript: Fetch a video's captions, punctuated unless raw is set
- summarize_video: Summarize a video
- ask_video: Answer a question about a video

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)

Since stdout belongs to the protocol, logs go to the log file shown by
"ytqa paths" when mcp_log is enabled in the config.`,
	Example: `  # Run MCP server with stdio transport
  ytqa mcp

  # Run MCP server with HTTP transport on port 8080
  ytqa mcp --transport=http --port=8080`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// stdout belongs to the protocol
		config.Quiet = true
		log, closer := internal.NewFileLogger(config.LogFile, config.MCPLogEnabled, config.Verbose)
		defer closer.Close()

		app, err := newApp(cmd, false, internal.WithLogger(log))
		if err != nil {
			return err
		}

		log.WithField("transport", transport).Info("starting mcp server")
		return internal.NewMCPServer(app, version).Start(cmd.Context(), transport, port)
	},
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol (stdio or http)")
	mcpCmd.Flags().Int("port", 8080, "Port for HTTP transport (only used with --transport=http)")
	internal.AddGenerationFlags(mcpCmd)
	internal.AddPunctuationFlags(mcpCmd)
	rootCmd.AddCommand(mcpCmd)
}
