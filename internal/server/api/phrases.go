package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/store"
)

// PhraseHandler handles HTTP requests for saved phrases.
type PhraseHandler struct {
	store *store.Store
	app   *app.App
}

// NewPhraseHandler creates a new PhraseHandler. The app is optional; when
// present, phrases can be spoken directly.
func NewPhraseHandler(s *store.Store, a *app.App) *PhraseHandler {
	return &PhraseHandler{store: s, app: a}
}

type createPhraseRequest struct {
	Text string `json:"text"`
}

type phraseResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Uses      int    `json:"uses"`
	CreatedAt string `json:"created_at"`
}

type listPhrasesResponse struct {
	Phrases []phraseResponse `json:"phrases"`
}

func toPhraseResponse(p *store.Phrase) phraseResponse {
	return phraseResponse{
		ID:        p.ID,
		Text:      p.Text,
		Uses:      p.Uses,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ServeHTTP routes phrase requests.
// Expected paths: /api/phrases, /api/phrases/{id}, /api/phrases/{id}/speak
func (h *PhraseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/phrases")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w)
		case http.MethodPost:
			h.create(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/speak"); ok {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.speak(w, id)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, id)
	case http.MethodDelete:
		h.delete(w, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *PhraseHandler) list(w http.ResponseWriter) {
	phrases, err := h.store.Phrases().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list phrases")
		return
	}

	response := listPhrasesResponse{
		Phrases: make([]phraseResponse, 0, len(phrases)),
	}
	for _, p := range phrases {
		response.Phrases = append(response.Phrases, toPhraseResponse(p))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *PhraseHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createPhraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	phrase := &store.Phrase{Text: strings.TrimSpace(req.Text)}
	if err := h.store.Phrases().Create(phrase); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create phrase")
		return
	}
	writeJSON(w, http.StatusCreated, toPhraseResponse(phrase))
}

func (h *PhraseHandler) get(w http.ResponseWriter, id string) {
	phrase, err := h.store.Phrases().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Phrase not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get phrase")
		return
	}
	writeJSON(w, http.StatusOK, toPhraseResponse(phrase))
}

func (h *PhraseHandler) delete(w http.ResponseWriter, id string) {
	if err := h.store.Phrases().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Phrase not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete phrase")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// speak voices a saved phrase and bumps its use counter.
func (h *PhraseHandler) speak(w http.ResponseWriter, id string) {
	phrase, err := h.store.Phrases().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Phrase not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get phrase")
		return
	}

	if err := h.store.Phrases().Touch(id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update phrase")
		return
	}

	if h.app != nil {
		h.app.SpeakText(phrase.Text)
	}
	writeJSON(w, http.StatusAccepted, toPhraseResponse(phrase))
}
