// Package app wires the translator together: the capture and recognition
// pipeline feeding the sentence buffer on one side, and speech input
// driving fingerspelling playback on the other.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/fingerspell"
	"github.com/ayusman/mudra/internal/sentence"
	"github.com/ayusman/mudra/internal/speech"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/suggest"
)

// Pipeline timing defaults.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 2
	// ActiveFPS is the frame rate during active recognition.
	ActiveFPS = 15
	// IdleTimeoutMs is how long after the last motion the pipeline drops
	// back to idle.
	IdleTimeoutMs = 2000
)

// Config holds the components the app orchestrates. Nil components get
// working defaults; tests inject mocks.
type Config struct {
	Camera     capture.Camera
	Detector   detector.Detector
	Classifier classify.Classifier
	Refiner    *classify.Refiner
	Suggester  *suggest.Engine
	Speaker    *speech.Speaker
	Listener   *speech.Listener
	Speller    *fingerspell.Player
	Store      *store.Store

	MotionThreshold float64
	MinConfidence   float64
	StableTicks     int
	IdleFPS         int
	ActiveFPS       int
}

// App drives the recognition pipeline and owns the sentence being
// composed.
type App struct {
	config    Config
	camera    capture.Camera
	motion    *capture.MotionDetector
	detector  detector.Detector
	classify  classify.Classifier
	refiner   *classify.Refiner
	debounce  *sentence.Debouncer
	buffer    *sentence.Buffer
	suggester *suggest.Engine
	speaker   *speech.Speaker
	listener  *speech.Listener
	speller   *fingerspell.Player
	store     *store.Store

	idleFPS       int
	activeFPS     int
	minConfidence float64

	mu          sync.RWMutex
	enabled     bool
	stopCh      chan struct{}
	suggestions []string
	lastSymbol  rune
	lastConf    float64
	activeMode  bool
	transcript  string
	speechErr   string
	frameJPEG   []byte

	listenerMu sync.Mutex
}

// New assembles an App from the given components.
func New(config Config) *App {
	if config.MotionThreshold <= 0 {
		config.MotionThreshold = capture.DefaultMotionThreshold
	}
	if config.MinConfidence <= 0 {
		config.MinConfidence = classify.DefaultMinConfidence
	}
	if config.IdleFPS <= 0 {
		config.IdleFPS = IdleFPS
	}
	if config.ActiveFPS <= 0 {
		config.ActiveFPS = ActiveFPS
	}

	a := &App{
		config:        config,
		camera:        config.Camera,
		motion:        capture.NewMotionDetector(config.MotionThreshold),
		detector:      config.Detector,
		classify:      config.Classifier,
		refiner:       config.Refiner,
		debounce:      sentence.NewDebouncer(config.StableTicks),
		buffer:        sentence.NewBuffer(),
		suggester:     config.Suggester,
		speaker:       config.Speaker,
		listener:      config.Listener,
		speller:       config.Speller,
		store:         config.Store,
		idleFPS:       config.IdleFPS,
		activeFPS:     config.ActiveFPS,
		minConfidence: config.MinConfidence,
	}

	if a.camera == nil {
		a.camera = capture.NewCamera(capture.DefaultCameraConfig())
	}
	if a.refiner == nil {
		a.refiner = classify.NewRefiner(classify.DefaultRuleConfig())
	}
	if a.suggester == nil {
		a.suggester = suggest.Builtin(suggest.DefaultMaxCandidates)
	}

	// MediaPipe when available, mock otherwise, same as the classifier
	// fallback handled by the caller.
	if a.detector == nil {
		if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
			a.detector = mp
			log.Info("using mediapipe hand detection")
		} else {
			log.Warn("mediapipe unavailable, using mock detector", "err", err)
			a.detector = detector.NewMockDetector()
		}
	}
	if a.classify == nil {
		a.classify = classify.NewMockClassifier(classify.SymbolNone)
	}

	return a
}

// Start opens the camera and begins the recognition pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(a.idleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Info("recognition pipeline started")
	return nil
}

// Stop halts the pipeline and releases devices.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	a.mu.Unlock()

	a.StopListening()
	if a.speller != nil {
		a.speller.Stop()
	}
	if a.speaker != nil {
		a.speaker.Stop()
	}

	if err := a.camera.Close(); err != nil {
		log.Error("closing camera", "err", err)
	}
	a.motion.Close()
	if err := a.detector.Close(); err != nil {
		log.Error("closing detector", "err", err)
	}
	if err := a.classify.Close(); err != nil {
		log.Error("closing classifier", "err", err)
	}

	log.Info("recognition pipeline stopped")
}

// SetEnabled turns letter recognition on or off. The camera keeps
// running either way so the preview stays live.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if !enabled {
		a.debounce.Reset()
	}
}

// IsEnabled reports whether recognition is on.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Sentence returns the composed sentence.
func (a *App) Sentence() string {
	return a.buffer.Sentence()
}

// CurrentWord returns the word being spelled.
func (a *App) CurrentWord() string {
	return a.buffer.CurrentWord()
}

// Clear empties the sentence buffer.
func (a *App) Clear() {
	a.buffer.Clear()
	a.debounce.Reset()
	a.refreshSuggestions()
}

// Space ends the current word, as if the space sign had been held.
func (a *App) Space() {
	a.buffer.AppendSpace()
	a.refreshSuggestions()
}

// Backspace removes the last rune.
func (a *App) Backspace() {
	a.buffer.Backspace()
	a.refreshSuggestions()
}

// Suggestions returns completions for the current word.
func (a *App) Suggestions() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]string(nil), a.suggestions...)
}

// ApplySuggestion replaces the current partial word with the chosen
// completion.
func (a *App) ApplySuggestion(word string) {
	a.buffer.ApplySuggestion(word)
	a.refreshSuggestions()
}

// Speak voices the composed sentence. A second call replaces the first;
// utterances never overlap.
func (a *App) Speak() {
	if a.speaker == nil {
		return
	}
	text := a.buffer.Sentence()
	if text == "" {
		return
	}
	a.speaker.Speak(text)
}

// SpeakText voices arbitrary text, e.g. a saved phrase.
func (a *App) SpeakText(text string) {
	if a.speaker == nil || text == "" {
		return
	}
	a.speaker.Speak(text)
}

// Speller returns the fingerspelling playback engine.
func (a *App) Speller() *fingerspell.Player {
	return a.speller
}

// Store returns the settings store, nil when running without one.
func (a *App) Store() *store.Store {
	return a.store
}

// Camera returns the frame source.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// StartListening begins a speech capture session. The transcript, when
// one arrives, is played back as fingerspelling. Returns
// speech.ErrListenerBusy if a session is already running.
func (a *App) StartListening() error {
	if a.listener == nil {
		return speech.ErrRecognition
	}

	a.listenerMu.Lock()
	defer a.listenerMu.Unlock()

	ch, err := a.listener.Start()
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.transcript = ""
	a.speechErr = ""
	a.mu.Unlock()

	// Single handoff: the session goroutine publishes exactly one result
	// into the app state and, on success, starts playback.
	go func() {
		res, ok := <-ch
		if !ok {
			return
		}
		a.handleSpeechResult(res)
	}()

	return nil
}

// StopListening cancels the running capture session, if any.
func (a *App) StopListening() {
	if a.listener != nil {
		a.listener.Stop()
	}
}

// Listening reports whether a capture session is running.
func (a *App) Listening() bool {
	return a.listener != nil && a.listener.Active()
}

func (a *App) handleSpeechResult(res speech.Result) {
	a.mu.Lock()
	if errors.Is(res.Err, context.Canceled) {
		// The user cancelled; nothing to report.
		a.transcript = ""
	} else if res.Err != nil {
		a.speechErr = "recognition failed"
		a.transcript = ""
	} else {
		a.speechErr = ""
		a.transcript = res.Text
	}
	a.mu.Unlock()

	if res.Err != nil {
		log.Debug("speech capture ended", "err", res.Err)
		return
	}

	if a.speller != nil {
		a.speller.Play(res.Text)
	}
}

// State is a point-in-time snapshot of everything the presentation layer
// shows.
type State struct {
	Enabled     bool               `json:"enabled"`
	Active      bool               `json:"active"`
	Sentence    string             `json:"sentence"`
	CurrentWord string             `json:"current_word"`
	Suggestions []string           `json:"suggestions"`
	LastSymbol  string             `json:"last_symbol"`
	Confidence  float64            `json:"confidence"`
	Listening   bool               `json:"listening"`
	Transcript  string             `json:"transcript"`
	SpeechError string             `json:"speech_error,omitempty"`
	Spelling    fingerspell.Status `json:"-"`
}

// State returns the current snapshot.
func (a *App) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := State{
		Enabled:     a.enabled,
		Active:      a.activeMode,
		Sentence:    a.buffer.Sentence(),
		CurrentWord: a.buffer.CurrentWord(),
		Suggestions: append([]string(nil), a.suggestions...),
		Confidence:  a.lastConf,
		Listening:   a.listener != nil && a.listener.Active(),
		Transcript:  a.transcript,
		SpeechError: a.speechErr,
	}
	if a.lastSymbol != 0 {
		s.LastSymbol = symbolLabel(a.lastSymbol)
	}
	if a.speller != nil {
		s.Spelling = a.speller.Status()
	}
	return s
}

// LatestFrame returns the most recent preview frame as JPEG, or nil
// before the first frame.
func (a *App) LatestFrame() []byte {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frameJPEG
}

func symbolLabel(symbol rune) string {
	switch symbol {
	case classify.SymbolSpace:
		return "space"
	case classify.SymbolBackspace:
		return "backspace"
	default:
		return string(symbol)
	}
}

func (a *App) refreshSuggestions() {
	word := a.buffer.CurrentWord()
	suggestions := a.suggester.Suggest(word)

	a.mu.Lock()
	a.suggestions = suggestions
	a.mu.Unlock()
}

func (a *App) setLastCommit(symbol rune, confidence float64) {
	a.mu.Lock()
	a.lastSymbol = symbol
	a.lastConf = confidence
	a.mu.Unlock()
}

func (a *App) setActiveMode(active bool) {
	a.mu.Lock()
	a.activeMode = active
	a.mu.Unlock()
}

func (a *App) setFrameJPEG(data []byte) {
	a.mu.Lock()
	a.frameJPEG = data
	a.mu.Unlock()
}

// idleTimeout returns the duration after which the pipeline returns to
// idle frame rates.
func idleTimeout() time.Duration {
	return IdleTimeoutMs * time.Millisecond
}
