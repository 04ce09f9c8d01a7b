package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPrompts(t *testing.T) {
	pm, err := NewPromptManager("", "")
	require.NoError(t, err)

	summary, err := pm.Summary("the transcript")
	require.NoError(t, err)
	assert.Equal(t, "Summarize this text. Do not miss any keywords:\n\nthe transcript", summary)

	answer, err := pm.Answer("the transcript", "why?")
	require.NoError(t, err)
	assert.Equal(t, "Based on the following transcript, answer the question:\n\nTranscript:\nthe transcript\n\nQuestion: why?", answer)
}

func TestPromptFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("TL;DR {{.Transcript}}"), 0644))

	pm, err := NewPromptManager(path, "Q: {{.Question}} T: {{.Transcript}}")
	require.NoError(t, err)

	summary, err := pm.Summary("x")
	require.NoError(t, err)
	assert.Equal(t, "TL;DR x", summary)

	answer, err := pm.Answer("x", "y")
	require.NoError(t, err)
	assert.Equal(t, "Q: y T: x", answer)
}

func TestPromptLoadKeepsPreviousOnError(t *testing.T) {
	pm, err := NewPromptManager("first {{.Transcript}}", "")
	require.NoError(t, err)

	err = pm.Load("{{.Transcript", "")
	require.Error(t, err)

	summary, err := pm.Summary("x")
	require.NoError(t, err)
	assert.Equal(t, "first x", summary)
}

func TestNewPromptManagerInvalid(t *testing.T) {
	_, err := NewPromptManager("", "{{if}}")
	assert.Error(t, err)
}

func TestIsLikelyFilePath(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"prompts/summary.txt", true},
		{"summary.tmpl", true},
		{"Summarize {{.Transcript}}", false},
		{"Summarize this text please", false},
		{"summary", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLikelyFilePath(tt.in))
		})
	}
}
