package internal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Console runs the one-shot interactive prompt: URL, menu choice, result
type Console struct {
	app    *App
	in     *bufio.Reader
	out    io.Writer
	render func(string) (string, error)
}

// NewConsole creates a console reading answers from in and writing to out
func NewConsole(app *App, in io.Reader, out io.Writer) *Console {
	return &Console{
		app:    app,
		in:     bufio.NewReader(in),
		out:    out,
		render: RenderMarkdown,
	}
}

// Run drives one fetch and one action. Pipeline errors are returned to the
// caller; an unknown menu choice is reported and is not an error.
func (c *Console) Run(ctx context.Context) error {
	videoURL, err := c.ask("Enter YouTube video URL: ")
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Fetching transcript...")
	raw, err := c.app.Transcript(ctx, videoURL)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Restoring punctuation (this may take a moment)...")
	transcript, err := c.app.Restore(ctx, raw)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "\nChoose an option:")
	fmt.Fprintln(c.out, "1. Summarize the transcript")
	fmt.Fprintln(c.out, "2. Ask a question about the video")
	choice, err := c.ask("Enter 1 or 2: ")
	if err != nil {
		return err
	}

	switch ParseAction(choice) {
	case ActionSummarize:
		summary, err := c.app.Summarize(ctx, transcript)
		if err != nil {
			return err
		}
		c.print("Summary:", summary)
	case ActionAsk:
		question, err := c.ask("Enter your question: ")
		if err != nil {
			return err
		}
		answer, err := c.app.Answer(ctx, transcript, question)
		if err != nil {
			return err
		}
		c.print("Answer:", answer)
	default:
		fmt.Fprintln(c.out, "Invalid choice.")
	}
	return nil
}

// ask prints prompt and reads one line. EOF after a partial line is accepted.
func (c *Console) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// print shows a result; rendering failures fall back to the plain text
func (c *Console) print(heading, body string) {
	rendered, err := c.render(body)
	if err != nil {
		rendered = body
	}
	fmt.Fprintln(c.out)
	color.New(color.Bold, color.FgGreen).Fprintln(c.out, heading)
	fmt.Fprintln(c.out, strings.TrimRight(rendered, "\n"))
}
