package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/app"
)

// SentenceHandler exposes the sentence buffer: reading it, editing it,
// and applying suggestions.
type SentenceHandler struct {
	app *app.App
}

// NewSentenceHandler creates a new SentenceHandler over the app.
func NewSentenceHandler(a *app.App) *SentenceHandler {
	return &SentenceHandler{app: a}
}

type sentenceResponse struct {
	Sentence    string   `json:"sentence"`
	CurrentWord string   `json:"current_word"`
	Suggestions []string `json:"suggestions"`
}

type applySuggestionRequest struct {
	Word string `json:"word"`
}

// ServeHTTP routes sentence requests.
// Expected paths: /api/sentence, /api/sentence/{action}
func (h *SentenceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := strings.TrimPrefix(r.URL.Path, "/api/sentence")
	action = strings.TrimPrefix(action, "/")

	if action == "" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.get(w)
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	switch action {
	case "clear":
		h.app.Clear()
	case "space":
		h.app.Space()
	case "backspace":
		h.app.Backspace()
	case "suggestion":
		var req applySuggestionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if req.Word == "" {
			writeError(w, http.StatusBadRequest, "Word is required")
			return
		}
		h.app.ApplySuggestion(req.Word)
	default:
		writeError(w, http.StatusNotFound, "Unknown action")
		return
	}

	h.get(w)
}

func (h *SentenceHandler) get(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, sentenceResponse{
		Sentence:    h.app.Sentence(),
		CurrentWord: h.app.CurrentWord(),
		Suggestions: h.app.Suggestions(),
	})
}
