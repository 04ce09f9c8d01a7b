package internal

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"text/template"
)

// Default prompt templates
const (
	DefaultSummaryPrompt = "Summarize this text. Do not miss any keywords:\n\n{{.Transcript}}"
	DefaultAnswerPrompt  = "Based on the following transcript, answer the question:\n\nTranscript:\n{{.Transcript}}\n\nQuestion: {{.Question}}"
)

// PromptData for template injection
type PromptData struct {
	Transcript string
	Question   string
}

// PromptManager holds the summary and answer templates
type PromptManager struct {
	mu      sync.RWMutex
	summary *template.Template
	answer  *template.Template
}

// NewPromptManager parses the configured templates. Each setting may be a
// template string or a path to a template file; empty means the default.
func NewPromptManager(summarySetting, answerSetting string) (*PromptManager, error) {
	pm := &PromptManager{}
	if err := pm.Load(summarySetting, answerSetting); err != nil {
		return nil, err
	}
	return pm, nil
}

// Load replaces both templates. On error the previous templates stay active.
func (pm *PromptManager) Load(summarySetting, answerSetting string) error {
	summary, answer, err := parsePrompts(summarySetting, answerSetting)
	if err != nil {
		return err
	}
	pm.set(summary, answer)
	return nil
}

func (pm *PromptManager) set(summary, answer *template.Template) {
	pm.mu.Lock()
	pm.summary, pm.answer = summary, answer
	pm.mu.Unlock()
}

func parsePrompts(summarySetting, answerSetting string) (summary, answer *template.Template, err error) {
	summary, err = parsePromptSetting("summary", summarySetting, DefaultSummaryPrompt)
	if err != nil {
		return nil, nil, err
	}
	answer, err = parsePromptSetting("answer", answerSetting, DefaultAnswerPrompt)
	if err != nil {
		return nil, nil, err
	}
	return summary, answer, nil
}

func parsePromptSetting(name, setting, fallback string) (*template.Template, error) {
	content := fallback
	if setting != "" {
		content = setting
		if IsLikelyFilePath(setting) && FileExists(setting) {
			data, err := os.ReadFile(setting)
			if err != nil {
				return nil, fmt.Errorf("reading %s prompt template: %w", name, err)
			}
			content = string(data)
		}
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s prompt template: %w", name, err)
	}
	return tmpl, nil
}

// Summary renders the summary prompt
func (pm *PromptManager) Summary(transcript string) (string, error) {
	pm.mu.RLock()
	tmpl := pm.summary
	pm.mu.RUnlock()
	return render(tmpl, PromptData{Transcript: transcript})
}

// Answer renders the question prompt
func (pm *PromptManager) Answer(transcript, question string) (string, error) {
	pm.mu.RLock()
	tmpl := pm.answer
	pm.mu.RUnlock()
	return render(tmpl, PromptData{Transcript: transcript, Question: question})
}

func render(tmpl *template.Template, data PromptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}
	return buf.String(), nil
}

// IsLikelyFilePath uses heuristics to determine if a string is likely a file path
func IsLikelyFilePath(s string) bool {
	if strings.Contains(s, "{{") {
		return false
	}

	if strings.Contains(s, "/") || strings.Contains(s, "\\") {
		return true
	}

	if strings.HasSuffix(s, ".txt") || strings.HasSuffix(s, ".md") ||
		strings.HasSuffix(s, ".tmpl") || strings.HasSuffix(s, ".template") {
		return true
	}

	// long strings are prompts
	if len(s) > 200 {
		return false
	}

	return !strings.Contains(s, " ") && !strings.Contains(s, "\n")
}
