package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// Restorer reinserts punctuation and casing into unpunctuated text
type Restorer interface {
	Restore(ctx context.Context, text string) (string, error)
}

// DefaultPunctuationModel is the multilingual model used by deepmultilingualpunctuation
const DefaultPunctuationModel = "oliverguhr/fullstop-punctuation-multilang-large"

// marks the model predicts; anything already in the text is removed first
const punctuationMarks = ".,?-:;!"

// Long transcripts are classified in overlapping word windows that fit the
// model's 512 token input. The last words of each window are relabeled by
// the next one, where they have context on both sides.
const (
	punctuationWindow  = 230
	punctuationOverlap = 5
)

// PunctuationModel runs a token-classification model behind an HTTP
// inference endpoint. It is built once and shared by every request.
type PunctuationModel struct {
	endpoint string
	token    string
	client   *http.Client
	log      logrus.FieldLogger
	window   int
	overlap  int
}

// NewPunctuationModel creates a model client for endpoint (the full model URL)
func NewPunctuationModel(endpoint, token string, timeout time.Duration, log logrus.FieldLogger) *PunctuationModel {
	return &PunctuationModel{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: timeout},
		log:      log,
		window:   punctuationWindow,
		overlap:  punctuationOverlap,
	}
}

type tokenPrediction struct {
	Entity      string `json:"entity"`
	EntityGroup string `json:"entity_group"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
}

func (p tokenPrediction) label() string {
	if p.Entity != "" {
		return p.Entity
	}
	return p.EntityGroup
}

// Restore labels the text window by window, one request per window
func (m *PunctuationModel) Restore(ctx context.Context, text string) (string, error) {
	words := splitWords(text)
	if len(words) == 0 {
		return "", nil
	}

	labels := make([]string, len(words))
	step := max(m.window-m.overlap, 1)
	requests := 0
	for start := 0; ; start += step {
		end := min(start+m.window, len(words))
		window := words[start:end]

		predictions, err := m.classify(ctx, strings.Join(window, " "))
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrRestore, err)
		}
		copy(labels[start:end], wordLabels(window, predictions))
		requests++

		if end == len(words) {
			break
		}
	}

	m.log.WithFields(logrus.Fields{
		"words":    len(words),
		"requests": requests,
	}).Debug("punctuation restored")

	return applyLabels(words, labels), nil
}

func (m *PunctuationModel) classify(ctx context.Context, text string) ([]tokenPrediction, error) {
	body, err := json.Marshal(map[string]any{
		"inputs":     text,
		"parameters": map[string]any{"aggregation_strategy": "none"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.token != "" {
		req.Header.Set("Authorization", "Bearer "+m.token)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling inference endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("inference endpoint returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var predictions []tokenPrediction
	if err := json.NewDecoder(resp.Body).Decode(&predictions); err != nil {
		return nil, fmt.Errorf("decoding predictions: %w", err)
	}
	return predictions, nil
}

// splitWords breaks text on whitespace and strips the punctuation the model
// predicts from word edges. Numbers like 3.5 keep their inner dot.
func splitWords(text string) []string {
	fields := strings.Fields(text)
	words := fields[:0]
	for _, f := range fields {
		w := strings.Trim(f, punctuationMarks)
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// wordLabels assigns each word the label of its last token, locating tokens
// by their final character so a leading space never shifts them left.
// Offsets are rune offsets into the words joined by single spaces.
func wordLabels(words []string, predictions []tokenPrediction) []string {
	starts := make([]int, len(words))
	offset := 0
	for i, w := range words {
		starts[i] = offset
		offset += utf8.RuneCountInString(w) + 1
	}

	labels := make([]string, len(words))
	for i := range labels {
		labels[i] = "0"
	}
	for _, p := range predictions {
		pos := p.Start
		if p.End > p.Start {
			pos = p.End - 1
		}
		// index of the last word starting at or before pos
		i := sort.Search(len(starts), func(i int) bool { return starts[i] > pos }) - 1
		if i < 0 {
			continue
		}
		labels[i] = p.label()
	}
	return labels
}

// applyLabels appends each word's predicted mark and capitalizes sentence starts
func applyLabels(words, labels []string) string {
	var sb strings.Builder
	capitalize := true
	for i, w := range words {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if capitalize {
			w = upperFirst(w)
		}
		sb.WriteString(w)

		label := labels[i]
		if label != "0" && label != "" {
			sb.WriteString(label)
		}
		capitalize = label == "." || label == "?"
	}

	out := sb.String()
	// close the last sentence if the model left it open
	if last, _ := utf8.DecodeLastRuneInString(out); !strings.ContainsRune(".?!", last) {
		out = strings.TrimRight(out, ",-:") + "."
	}
	return out
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// LLMRestorer asks the chat model to punctuate the transcript
type LLMRestorer struct {
	client    ChatClient
	model     string
	maxTokens int64
}

// NewLLMRestorer creates a restorer that delegates to a chat model
func NewLLMRestorer(client ChatClient, model string, maxTokens int64) *LLMRestorer {
	return &LLMRestorer{client: client, model: model, maxTokens: maxTokens}
}

const restorePrompt = "Restore punctuation and capitalization in the following transcript. " +
	"Do not add, remove or reorder any words. Reply with the punctuated text only.\n\n"

// Restore returns the model's punctuated version of text
func (r *LLMRestorer) Restore(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	out, err := r.client.Complete(ctx, ChatRequest{
		Model:       r.model,
		Prompt:      restorePrompt + text,
		Temperature: 0,
		MaxTokens:   r.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRestore, err)
	}
	return strings.TrimSpace(out), nil
}

// NopRestorer returns text unchanged
type NopRestorer struct{}

func (NopRestorer) Restore(_ context.Context, text string) (string, error) {
	return text, nil
}
