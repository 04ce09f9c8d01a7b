package internal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runConsole(t *testing.T, app *App, input string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	c := NewConsole(app, strings.NewReader(input), &out)
	c.render = func(s string) (string, error) { return s, nil }
	err := c.Run(context.Background())
	return out.String(), err
}

func TestConsoleSummarize(t *testing.T) {
	chat := &fakeChat{reply: "It says hello."}
	app := newTestApp(t, testConfig(t), helloProvider(), NopRestorer{}, chat)

	out, err := runConsole(t, app, "https://www.youtube.com/watch?v=abc\n1\n")
	require.NoError(t, err)

	assert.Equal(t, "Enter YouTube video URL: "+
		"Fetching transcript...\n"+
		"Restoring punctuation (this may take a moment)...\n"+
		"\nChoose an option:\n"+
		"1. Summarize the transcript\n"+
		"2. Ask a question about the video\n"+
		"Enter 1 or 2: "+
		"\nSummary:\n"+
		"It says hello.\n", out)
	assert.Equal(t, "Summarize this text. Do not miss any keywords:\n\nhello world", chat.last().Prompt)
}

func TestConsoleAsk(t *testing.T) {
	chat := &fakeChat{reply: "The world."}
	app := newTestApp(t, testConfig(t), helloProvider(), NopRestorer{}, chat)

	// no trailing newline on the last answer
	out, err := runConsole(t, app, "abc\n2\nWho is greeted?")
	require.NoError(t, err)

	assert.Contains(t, out, "Enter your question: ")
	assert.True(t, strings.HasSuffix(out, "\nAnswer:\nThe world.\n"))
	assert.Contains(t, chat.last().Prompt, "Question: Who is greeted?")
}

func TestConsoleInvalidChoice(t *testing.T) {
	chat := &fakeChat{}
	app := newTestApp(t, testConfig(t), helloProvider(), NopRestorer{}, chat)

	out, err := runConsole(t, app, "abc\n3\n")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "Enter 1 or 2: Invalid choice.\n"))
	assert.Empty(t, chat.reqs)
}

func TestConsoleFetchError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("video unavailable")}
	app := newTestApp(t, testConfig(t), provider, NopRestorer{}, &fakeChat{})

	out, err := runConsole(t, app, "abc\n1\n")
	assert.ErrorIs(t, err, ErrFetch)
	assert.NotContains(t, out, "Choose an option:")
}

func TestConsoleGenerateError(t *testing.T) {
	app := newTestApp(t, testConfig(t), helloProvider(), NopRestorer{}, &fakeChat{err: errors.New("invalid api key")})

	_, err := runConsole(t, app, "abc\n1\n")
	assert.ErrorIs(t, err, ErrGenerate)
}

func TestConsoleNoInput(t *testing.T) {
	app := newTestApp(t, testConfig(t), helloProvider(), NopRestorer{}, &fakeChat{})

	_, err := runConsole(t, app, "")
	assert.Error(t, err)
}
