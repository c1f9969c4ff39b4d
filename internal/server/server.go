// Package server provides the HTTP surface of the translator: the preview
// stream, the live state socket, and the control API the front end drives.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/fingerspell"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	App       *app.App
	Store     *store.Store
	Letters   *fingerspell.Library
}

// Server is the HTTP server for the translator.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.App != nil {
		sentenceHandler := api.NewSentenceHandler(s.config.App)
		s.mux.Handle("/api/sentence", sentenceHandler)
		s.mux.Handle("/api/sentence/", sentenceHandler)

		speechHandler := api.NewSpeechHandler(s.config.App)
		s.mux.Handle("/api/speak", speechHandler)
		s.mux.Handle("/api/listen", speechHandler)
		s.mux.Handle("/api/listen/", speechHandler)

		spellHandler := api.NewSpellHandler(s.config.App)
		s.mux.Handle("/api/spell", spellHandler)
		s.mux.Handle("/api/spell/", spellHandler)

		s.mux.HandleFunc("/api/state", s.handleState)

		s.mux.Handle("/api/stream", NewStreamHandler(s.config.App))
		s.mux.Handle("/api/ws", NewStateHandler(s.config.App))
	}

	if s.config.Store != nil {
		phraseHandler := api.NewPhraseHandler(s.config.Store, s.config.App)
		s.mux.Handle("/api/phrases", phraseHandler)
		s.mux.Handle("/api/phrases/", phraseHandler)
	}

	if s.config.Letters != nil {
		s.mux.Handle("/api/letters/", api.NewLetterHandler(s.config.Letters))
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleState handles GET requests to /api/state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.config.App.State()); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
