package internal

import (
	"errors"
	"fmt"
)

// Pipeline error kinds. Every stage wraps one of these so callers can decide
// what to show and whether a cached transcript survives.
var (
	ErrMissingAPIKey = errors.New("API key is required - set OPENAI_API_KEY (or GEMINI_API_KEY for the gemini provider) in the environment or config.toml")
	ErrFetch         = errors.New("fetching transcript")
	ErrRestore       = errors.New("restoring punctuation")
	ErrGenerate      = errors.New("generating response")
	ErrNoTranscript  = errors.New("no transcript loaded")
	ErrEmptyQuestion = errors.New("question is empty")
)

// invalidatesTranscript reports whether err means the cached transcript
// can no longer be trusted.
func invalidatesTranscript(err error) bool {
	return errors.Is(err, ErrFetch) || errors.Is(err, ErrRestore)
}

// ensureKind wraps err in kind unless it already carries it
func ensureKind(err, kind error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
