package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/app"
)

// SpellHandler controls animated fingerspelling playback.
type SpellHandler struct {
	app *app.App
}

// NewSpellHandler creates a new SpellHandler over the app.
func NewSpellHandler(a *app.App) *SpellHandler {
	return &SpellHandler{app: a}
}

type spellRequest struct {
	Text string `json:"text"`
}

type spellStatusResponse struct {
	State    string `json:"state"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
	Letter   string `json:"letter,omitempty"`
}

// ServeHTTP routes playback requests.
// Expected paths: /api/spell, /api/spell/{action}
func (h *SpellHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	speller := h.app.Speller()
	if speller == nil {
		writeError(w, http.StatusServiceUnavailable, "Fingerspelling unavailable")
		return
	}

	action := strings.TrimPrefix(r.URL.Path, "/api/spell")
	action = strings.TrimPrefix(action, "/")

	if action == "" {
		switch r.Method {
		case http.MethodGet:
			h.status(w)
		case http.MethodPost:
			var req spellRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid JSON")
				return
			}
			if req.Text == "" {
				writeError(w, http.StatusBadRequest, "Text is required")
				return
			}
			speller.Play(req.Text)
			h.status(w)
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	switch action {
	case "pause":
		speller.Pause()
	case "resume":
		speller.Resume()
	case "restart":
		speller.Restart()
	case "stop":
		speller.Stop()
	default:
		writeError(w, http.StatusNotFound, "Unknown action")
		return
	}

	h.status(w)
}

func (h *SpellHandler) status(w http.ResponseWriter) {
	st := h.app.Speller().Status()
	resp := spellStatusResponse{
		State:    st.State.String(),
		Position: st.Position,
		Total:    st.Total,
	}
	if st.Letter != 0 {
		resp.Letter = string(st.Letter)
	}
	writeJSON(w, http.StatusOK, resp)
}
