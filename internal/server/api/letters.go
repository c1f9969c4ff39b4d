package api

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/ayusman/mudra/internal/fingerspell"
)

// LetterHandler serves the per-letter hand-shape images.
type LetterHandler struct {
	letters *fingerspell.Library
}

// NewLetterHandler creates a new LetterHandler over the asset library.
func NewLetterHandler(lib *fingerspell.Library) *LetterHandler {
	return &LetterHandler{letters: lib}
}

// ServeHTTP handles GET /api/letters/{letter}.
func (h *LetterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/letters/")
	runes := []rune(name)
	if len(runes) != 1 {
		writeError(w, http.StatusBadRequest, "Letter required")
		return
	}

	letter := unicode.ToUpper(runes[0])
	data, ok := h.letters.Image(letter)
	if !ok {
		writeError(w, http.StatusNotFound, "No image for letter")
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "max-age=86400")
	w.Write(data)
}
