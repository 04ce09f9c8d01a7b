package internal

import (
	"fmt"
	"strings"
)

// Fragment is one timed unit of caption text
type Fragment struct {
	Text     string
	Start    float64
	Duration float64
}

// JoinFragments concatenates fragment texts with single spaces, in order.
// Timing is dropped and text is not normalized.
func JoinFragments(fragments []Fragment) string {
	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
	}
	return strings.Join(texts, " ")
}

// Action is what the user wants done with a transcript
type Action int

const (
	ActionUnknown Action = iota
	ActionSummarize
	ActionAsk
)

// String returns the form value for the action
func (a Action) String() string {
	switch a {
	case ActionSummarize:
		return "summarize"
	case ActionAsk:
		return "ask"
	default:
		return "unknown"
	}
}

// ParseAction maps menu choices and form values to an Action
func ParseAction(s string) Action {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "summarize":
		return ActionSummarize
	case "2", "ask":
		return ActionAsk
	default:
		return ActionUnknown
	}
}

// SessionState tracks where a web session is in the pipeline
type SessionState int

const (
	StateIdle SessionState = iota
	StateFetching
	StateReady
	StateSummarizing
	StateAnswering
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateReady:
		return "ready"
	case StateSummarizing:
		return "summarizing"
	case StateAnswering:
		return "answering"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
