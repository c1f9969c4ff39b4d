package speech

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	audiotranscriber "github.com/sklyt/whisper/pkg"
)

// DefaultListenWindow bounds one capture session. A session that runs the
// full window without usable speech ends with ErrNoSpeech.
const DefaultListenWindow = 8 * time.Second

// RecordFunc captures audio until the duration elapses or the context is
// cancelled, and returns the transcript. The production implementation
// drives a local whisper model; tests substitute a stub.
type RecordFunc func(ctx context.Context, duration time.Duration) (string, error)

// ListenerConfig holds settings for the whisper-backed recognizer.
type ListenerConfig struct {
	// WhisperBin is the whisper-cli executable.
	WhisperBin string
	// ModelPath is the GGML model file.
	ModelPath string
	// TempDir holds intermediate capture files.
	TempDir string
	// Window bounds one capture session.
	Window time.Duration
	// Verbose enables recognizer diagnostics.
	Verbose bool
}

// DefaultListenerConfig returns settings for the bundled model.
func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		WhisperBin: "whisper-cli",
		ModelPath:  "models/ggml-base.en.bin",
		TempDir:    ".mudra-stt",
		Window:     DefaultListenWindow,
	}
}

// Listener runs one-shot speech capture sessions. A session is started
// with Start, runs asynchronously, and delivers exactly one terminal
// Result on its channel: a transcript, ErrNoSpeech, or a recognizer
// failure. Stop cancels the session; a transcript that arrives after
// cancellation is discarded.
type Listener struct {
	record RecordFunc
	window time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc // nil when idle
}

// NewListener creates a listener over a local whisper model.
func NewListener(config ListenerConfig) *Listener {
	if config.Window <= 0 {
		config.Window = DefaultListenWindow
	}
	return &Listener{
		record: whisperRecord(config),
		window: config.Window,
	}
}

// NewListenerWithRecorder creates a listener over a custom capture
// function, used in tests.
func NewListenerWithRecorder(record RecordFunc, window time.Duration) *Listener {
	if window <= 0 {
		window = DefaultListenWindow
	}
	return &Listener{record: record, window: window}
}

// Start begins an asynchronous capture session. The returned channel
// delivers exactly one Result and is then closed. Returns ErrListenerBusy
// if a session is already running.
func (l *Listener) Start() (<-chan Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		return nil, ErrListenerBusy
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	ch := make(chan Result, 1)
	go l.run(ctx, cancel, ch)

	log.Debug("listening started", "window", l.window)
	return ch, nil
}

// Stop cancels the running session, if any. The session's channel still
// delivers its terminal Result, carrying context.Canceled.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
}

// Active reports whether a session is running.
func (l *Listener) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil
}

func (l *Listener) run(ctx context.Context, cancel context.CancelFunc, ch chan<- Result) {
	defer cancel()

	text, err := l.record(ctx, l.window)

	l.mu.Lock()
	l.cancel = nil
	l.mu.Unlock()

	res := finishSession(ctx, text, err)
	if res.Err != nil {
		log.Debug("listening ended", "err", res.Err)
	} else {
		log.Info("heard", "text", res.Text)
	}

	ch <- res
	close(ch)
}

// finishSession maps a raw capture outcome to the terminal Result.
// Cancellation wins over everything: whatever the recognizer produced
// after Stop is discarded.
func finishSession(ctx context.Context, text string, err error) Result {
	if ctx.Err() != nil {
		return Result{Err: ctx.Err()}
	}
	if err != nil {
		return Result{Err: fmt.Errorf("%w: %v", ErrRecognition, err)}
	}

	text = cleanTranscript(text)
	if text == "" {
		return Result{Err: ErrNoSpeech}
	}
	return Result{Text: text}
}

// whisperRecord builds the production capture function: record from the
// microphone for the requested duration, then transcribe with the local
// whisper model.
func whisperRecord(config ListenerConfig) RecordFunc {
	return func(ctx context.Context, duration time.Duration) (string, error) {
		var text string
		done := make(chan struct{})
		callback := func(t string) {
			text = t
			close(done)
		}

		t, err := audiotranscriber.NewTranscriber(
			config.WhisperBin,
			config.ModelPath,
			config.TempDir,
			"wav",
			callback,
			config.Verbose,
		)
		if err != nil {
			return "", fmt.Errorf("transcriber init: %w", err)
		}

		if err := t.Start(); err != nil {
			return "", fmt.Errorf("recording start: %w", err)
		}

		select {
		case <-time.After(duration):
		case <-ctx.Done():
		}

		t.Stop()
		<-done

		return text, nil
	}
}

// envAnnotation matches whisper environmental annotations like
// "(keyboard clicking)" or "[laughter]".
var envAnnotation = regexp.MustCompile(`[\(\[][a-zA-Z][a-zA-Z\s]*[\)\]]`)

// transcriptJunk are artifacts the model emits for non-speech audio.
var transcriptJunk = []string{
	"[BLANK_AUDIO]",
	"[BLANK AUDIO]",
	"(silence)",
	"[silence]",
	"(no speech)",
	"[no speech]",
	"[Music]",
	"(music)",
	"(background noise)",
	"(inaudible)",
}

// transcriptHallucinations are full utterances the model invents from
// silence; a transcript that is exactly one of these is discarded.
var transcriptHallucinations = []string{
	"...",
	"you",
	"Thank you.",
	"Thanks for watching!",
	"Thank you for watching.",
	"Bye.",
	"The end.",
}

// cleanTranscript normalizes whitespace and strips recognizer artifacts.
func cleanTranscript(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)

	for _, j := range transcriptJunk {
		s = strings.ReplaceAll(s, j, "")
		s = strings.ReplaceAll(s, strings.ToLower(j), "")
	}
	s = envAnnotation.ReplaceAllString(s, "")

	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	s = strings.TrimSpace(s)

	lower := strings.ToLower(s)
	for _, h := range transcriptHallucinations {
		if strings.ToLower(h) == lower {
			return ""
		}
	}

	return s
}
