package internal

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

//go:embed web/index.html
var webFS embed.FS

const sessionCookie = "ytqa_session"

// Panel is a rendered success or error message
type Panel struct {
	Kind  string // "success" or "error"
	Title string
	Body  string
}

type pageData struct {
	URL      string
	Ready    bool
	Action   string
	Question string
	Panels   []Panel
	Result   *Panel
}

// WebServer serves the single-page form
type WebServer struct {
	pipeline Pipeline
	store    *SessionStore
	log      logrus.FieldLogger
	tmpl     *template.Template
}

// NewWebServer creates the form server
func NewWebServer(pipeline Pipeline, store *SessionStore, log logrus.FieldLogger) (*WebServer, error) {
	tmpl, err := template.ParseFS(webFS, "web/index.html")
	if err != nil {
		return nil, err
	}
	return &WebServer{
		pipeline: pipeline,
		store:    store,
		log:      log,
		tmpl:     tmpl,
	}, nil
}

// Handler returns the HTTP routes wrapped in request logging
func (ws *WebServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(ws.logRequests)
	r.HandleFunc("/", ws.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/", ws.handleSubmit).Methods(http.MethodPost)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled
func (ws *WebServer) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           ws.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		ws.log.WithField("addr", addr).Info("web form listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (ws *WebServer) session(w http.ResponseWriter, r *http.Request) *Session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}
	s, created := ws.store.Get(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    s.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		ws.log.WithField("session", s.ID).Debug("session created")
	}
	return s
}

func (ws *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	s := ws.session(w, r)
	snap := s.Snapshot()
	ws.render(w, pageData{
		URL:    snap.URL,
		Ready:  snap.State == StateReady,
		Action: ActionSummarize.String(),
	})
}

func (ws *WebServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s := ws.session(w, r)
	log := ws.log.WithField("session", s.ID)

	data := pageData{
		URL:      strings.TrimSpace(r.PostFormValue("url")),
		Action:   r.PostFormValue("action"),
		Question: r.PostFormValue("question"),
	}
	if ParseAction(data.Action) == ActionUnknown {
		data.Action = ActionSummarize.String()
	}

	out := s.Interact(r.Context(), ws.pipeline, Interaction{
		URL:      data.URL,
		Action:   ParseAction(data.Action),
		Question: data.Question,
		Submit:   r.PostFormValue("submit") != "",
	})
	switch {
	case out.LoadErr != nil:
		log.WithError(out.LoadErr).Warn("loading transcript failed")
		data.Panels = append(data.Panels, Panel{Kind: "error", Body: "Error: " + out.LoadErr.Error()})
	case out.Fetched:
		log.WithField("url", data.URL).Info("transcript loaded")
		data.Panels = append(data.Panels, Panel{Kind: "success", Body: "Transcript fetched and punctuation restored!"})
	}

	data.Ready = out.Ready
	if out.Ran {
		result := resultPanel(log, ParseAction(data.Action), out)
		data.Result = &result
	}

	ws.render(w, data)
}

func resultPanel(log logrus.FieldLogger, action Action, out Outcome) Panel {
	switch {
	case errors.Is(out.ActionErr, ErrEmptyQuestion):
		return Panel{Kind: "error", Body: "Enter a question first."}
	case out.ActionErr != nil && action == ActionAsk:
		log.WithError(out.ActionErr).Warn("answering failed")
		return Panel{Kind: "error", Body: "Error answering question: " + out.ActionErr.Error()}
	case out.ActionErr != nil:
		log.WithError(out.ActionErr).Warn("summarizing failed")
		return Panel{Kind: "error", Body: "Error summarizing: " + out.ActionErr.Error()}
	case action == ActionAsk:
		return Panel{Kind: "success", Title: "Answer:", Body: out.Result}
	default:
		return Panel{Kind: "success", Title: "Summary:", Body: out.Result}
	}
}

func (ws *WebServer) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ws.tmpl.Execute(w, data); err != nil {
		ws.log.WithError(err).Error("rendering page")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (ws *WebServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		ws.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).Round(time.Millisecond),
		}).Info("request")
	})
}
