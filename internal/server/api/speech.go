package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/speech"
)

// SpeechHandler exposes voice output and voice input: speaking the
// sentence and starting or cancelling a listening session.
type SpeechHandler struct {
	app *app.App
}

// NewSpeechHandler creates a new SpeechHandler over the app.
func NewSpeechHandler(a *app.App) *SpeechHandler {
	return &SpeechHandler{app: a}
}

type speakRequest struct {
	Text string `json:"text"`
}

type listenResponse struct {
	Listening bool `json:"listening"`
}

// ServeHTTP routes speech requests.
// Expected paths: /api/speak, /api/listen, /api/listen/stop
func (h *SpeechHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	switch {
	case r.URL.Path == "/api/speak":
		h.speak(w, r)
	case r.URL.Path == "/api/listen":
		h.startListening(w)
	case strings.HasSuffix(r.URL.Path, "/stop"):
		h.stopListening(w)
	default:
		writeError(w, http.StatusNotFound, "Unknown action")
	}
}

// speak voices the composed sentence, or explicit text when provided.
// Overlapping calls replace the running utterance.
func (h *SpeechHandler) speak(w http.ResponseWriter, r *http.Request) {
	var req speakRequest
	if r.Body != nil {
		// An empty body means "speak the sentence".
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if req.Text != "" {
		h.app.SpeakText(req.Text)
	} else {
		h.app.Speak()
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "speaking"})
}

func (h *SpeechHandler) startListening(w http.ResponseWriter) {
	if err := h.app.StartListening(); err != nil {
		if errors.Is(err, speech.ErrListenerBusy) {
			writeError(w, http.StatusConflict, "Already listening")
			return
		}
		writeError(w, http.StatusServiceUnavailable, "Speech input unavailable")
		return
	}
	writeJSON(w, http.StatusAccepted, listenResponse{Listening: true})
}

func (h *SpeechHandler) stopListening(w http.ResponseWriter) {
	h.app.StopListening()
	writeJSON(w, http.StatusOK, listenResponse{Listening: false})
}
