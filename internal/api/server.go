// Package api exposes the edge calculator over HTTP: session lifecycle,
// card-by-card shoe tracking, per-decision evaluation and full chart
// generation.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MJE43/blackjack-edge-go/internal/session"
	"github.com/MJE43/blackjack-edge-go/internal/store"
)

// Server handles HTTP requests. The chart store is optional; without it
// every chart request recomputes.
type Server struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session.Session

	charts       *store.Store
	defaultDecks int
	logger       *log.Logger
	startTime    time.Time
}

// NewServer creates an API server. charts may be nil to disable the
// chart cache.
func NewServer(charts *store.Store, defaultDecks int) *Server {
	return &Server{
		sessions:     make(map[uuid.UUID]*session.Session),
		charts:       charts,
		defaultDecks: defaultDecks,
		logger:       log.New(os.Stdout, "[API] ", log.LstdFlags),
		startTime:    time.Now(),
	}
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.loggingMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Post("/deal", s.handleDeal)
			r.Post("/reset", s.handleReset)
			r.Get("/count", s.handleCount)
			r.Post("/evaluate", s.handleEvaluate)
			r.Post("/chart", s.handleChart)
		})
	})

	return r
}

// loggingMiddleware logs method, path, status and duration per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Printf(
			"request method=%s path=%s status=%d duration=%v request_id=%s",
			r.Method, r.URL.Path, ww.Status(), time.Since(start),
			middleware.GetReqID(r.Context()),
		)
	})
}

// session looks up a live session by its URL parameter.
func (s *Server) session(r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) addSession(sess *session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID()] = sess
}

func (s *Server) sessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a structured error envelope.
func (s *Server) writeError(w http.ResponseWriter, status int, errType, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"type":    errType,
			"message": message,
		},
	})
}
