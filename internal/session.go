package internal

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Pipeline is the part of App a web session drives
type Pipeline interface {
	PunctuatedTranscript(ctx context.Context, ref string) (string, error)
	Summarize(ctx context.Context, transcript string) (string, error)
	Answer(ctx context.Context, transcript, question string) (string, error)
}

// Session is one browser's state. The punctuated transcript is cached for
// the last URL that loaded successfully and for nothing else.
type Session struct {
	ID string

	mu         sync.Mutex
	state      SessionState
	url        string
	transcript string
	lastSeen   time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{ID: id, state: StateIdle, lastSeen: now}
}

// Snapshot is a consistent read of a session
type Snapshot struct {
	State      SessionState
	URL        string
	Transcript string
}

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state, URL: s.url, Transcript: s.transcript}
}

// Load makes the session's transcript match videoURL. It fetches only when
// nothing is cached or the URL changed; the old transcript is dropped before
// the fetch starts. On failure the session returns to Idle with an empty cache.
// It reports whether a fetch happened.
func (s *Session) Load(ctx context.Context, p Pipeline, videoURL string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, p, videoURL)
}

func (s *Session) load(ctx context.Context, p Pipeline, videoURL string) (bool, error) {
	if videoURL == "" {
		return false, nil
	}
	if s.transcript != "" && s.url == videoURL {
		return false, nil
	}

	s.clear()
	s.state = StateFetching

	transcript, err := p.PunctuatedTranscript(ctx, videoURL)
	if err != nil {
		s.clear()
		return true, ensureFetchKind(err)
	}

	s.url = videoURL
	s.transcript = transcript
	s.state = StateReady
	return true, nil
}

// Summarize runs a summary on the cached transcript. Generation errors keep
// the cache so the action can be retried without fetching again.
func (s *Session) Summarize(ctx context.Context, p Pipeline) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summarize(ctx, p)
}

func (s *Session) summarize(ctx context.Context, p Pipeline) (string, error) {
	if s.state != StateReady {
		return "", ErrNoTranscript
	}
	s.state = StateSummarizing
	defer func() { s.state = StateReady }()

	return p.Summarize(ctx, s.transcript)
}

// Ask answers question from the cached transcript
func (s *Session) Ask(ctx context.Context, p Pipeline, question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ask(ctx, p, question)
}

func (s *Session) ask(ctx context.Context, p Pipeline, question string) (string, error) {
	if s.state != StateReady {
		return "", ErrNoTranscript
	}
	s.state = StateAnswering
	defer func() { s.state = StateReady }()

	return p.Answer(ctx, s.transcript, question)
}

// Interaction is one form submission: the URL field, the chosen action and,
// when Submit is set, a request to run that action
type Interaction struct {
	URL      string
	Action   Action
	Question string
	Submit   bool
}

// Outcome reports what an Interaction did
type Outcome struct {
	Fetched   bool
	LoadErr   error
	Ready     bool
	Ran       bool
	Result    string
	ActionErr error
}

// Interact loads in.URL and runs the requested action under one lock, so a
// concurrent submission on the same session can't swap the transcript
// between the two. The session counts as ready only for the URL it holds.
func (s *Session) Interact(ctx context.Context, p Pipeline, in Interaction) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out Outcome
	out.Fetched, out.LoadErr = s.load(ctx, p, in.URL)
	out.Ready = s.state == StateReady && s.url == in.URL
	if !out.Ready || !in.Submit {
		return out
	}

	out.Ran = true
	switch in.Action {
	case ActionAsk:
		if strings.TrimSpace(in.Question) == "" {
			out.ActionErr = ErrEmptyQuestion
			return out
		}
		out.Result, out.ActionErr = s.ask(ctx, p, in.Question)
	default:
		out.Result, out.ActionErr = s.summarize(ctx, p)
	}
	return out
}

// clear drops the cached transcript; callers hold s.mu
func (s *Session) clear() {
	s.url = ""
	s.transcript = ""
	s.state = StateIdle
}

// ensureFetchKind tags load failures that carry no pipeline kind as fetch errors
func ensureFetchKind(err error) error {
	if invalidatesTranscript(err) {
		return err
	}
	return ensureKind(err, ErrFetch)
}

// SessionStore keeps sessions in memory and expires idle ones
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a store; ttl <= 0 disables expiry
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session for id, creating a fresh one when id is unknown
// or expired. The second result is true when a new session was created.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.expire(now)

	if s, ok := st.sessions[id]; ok && id != "" {
		s.lastSeen = now
		return s, false
	}

	s := newSession(uuid.NewString(), now)
	st.sessions[s.ID] = s
	return s, true
}

// Len returns the number of live sessions
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// expire drops sessions idle longer than ttl; callers hold st.mu
func (st *SessionStore) expire(now time.Time) {
	if st.ttl <= 0 {
		return
	}
	for id, s := range st.sessions {
		if now.Sub(s.lastSeen) > st.ttl {
			delete(st.sessions, id)
		}
	}
}
