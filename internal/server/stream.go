package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/app"
)

// StreamHandler serves the camera preview as MJPEG. Frames come from the
// recognition pipeline, which owns the camera; the handler never touches
// the device.
type StreamHandler struct {
	app *app.App
}

// NewStreamHandler creates a new StreamHandler over the app.
func NewStreamHandler(a *app.App) *StreamHandler {
	return &StreamHandler{app: a}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame := h.app.LatestFrame()
		if frame == nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(frame))
		w.Write(frame)
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(66 * time.Millisecond) // ~15 FPS
	}
}
