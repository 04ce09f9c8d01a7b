package internal

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer exposes the pipeline as MCP tools. Every call is independent;
// nothing is cached between calls.
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App, version string) *MCPServer {
	mcpServer := server.NewMCPServer(
		"ytqa",
		version,
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}
	s.registerTools()

	return s
}

func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_transcript",
		mcp.WithDescription("Fetch a YouTube video's captions as one text. Punctuation and casing are restored unless raw is true."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or video ID"),
			mcp.Required(),
		),
		mcp.WithBoolean("raw",
			mcp.Description("Return captions without punctuation restoration"),
		),
	), s.handleGetTranscript)

	s.mcpServer.AddTool(mcp.NewTool("summarize_video",
		mcp.WithDescription("Summarize a YouTube video from its captions, keeping its keywords."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or video ID"),
			mcp.Required(),
		),
	), s.handleSummarize)

	s.mcpServer.AddTool(mcp.NewTool("ask_video",
		mcp.WithDescription("Answer a question about a YouTube video using its captions."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or video ID"),
			mcp.Required(),
		),
		mcp.WithString("question",
			mcp.Description("Question about the video's content"),
			mcp.Required(),
		),
	), s.handleAsk)
}

func (s *MCPServer) handleGetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}
	raw := request.GetBool("raw", false)

	s.app.Logger().WithField("url", url).Info("mcp get_transcript")

	var transcript string
	if raw {
		transcript, err = s.app.Transcript(ctx, url)
	} else {
		transcript, err = s.app.PunctuatedTranscript(ctx, url)
	}
	if err != nil {
		s.app.Logger().WithError(err).Error("mcp get_transcript failed")
		return mcp.NewToolResultErrorFromErr("no transcript available", err), nil
	}
	return mcp.NewToolResultText(transcript), nil
}

func (s *MCPServer) handleSummarize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	s.app.Logger().WithField("url", url).Info("mcp summarize_video")

	transcript, err := s.app.PunctuatedTranscript(ctx, url)
	if err != nil {
		s.app.Logger().WithError(err).Error("mcp summarize_video failed")
		return mcp.NewToolResultErrorFromErr("no transcript available", err), nil
	}
	summary, err := s.app.Summarize(ctx, transcript)
	if err != nil {
		s.app.Logger().WithError(err).Error("mcp summarize_video failed")
		return mcp.NewToolResultErrorFromErr("summarizing failed", err), nil
	}
	return mcp.NewToolResultText(summary), nil
}

func (s *MCPServer) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question parameter is required and must be a string"), nil
	}

	s.app.Logger().WithField("url", url).Info("mcp ask_video")

	transcript, err := s.app.PunctuatedTranscript(ctx, url)
	if err != nil {
		s.app.Logger().WithError(err).Error("mcp ask_video failed")
		return mcp.NewToolResultErrorFromErr("no transcript available", err), nil
	}
	answer, err := s.app.Answer(ctx, transcript, question)
	if err != nil {
		s.app.Logger().WithError(err).Error("mcp ask_video failed")
		return mcp.NewToolResultErrorFromErr("answering failed", err), nil
	}
	return mcp.NewToolResultText(answer), nil
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	switch transport {
	case "http":
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.Start(fmt.Sprintf(":%d", port))
		}()
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return httpServer.Shutdown(context.Background())
		}
	case "stdio":
		return server.ServeStdio(s.mcpServer)
	default:
		return fmt.Errorf("unsupported transport: %s (supported: stdio, http)", transport)
	}
}
