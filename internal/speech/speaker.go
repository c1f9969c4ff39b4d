package speech

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// Speaker voices text through a Synthesizer and Player. Speak is
// fire-and-forget and at most one utterance plays at a time: a new call
// interrupts whatever is in flight and replaces it.
type Speaker struct {
	synth  Synthesizer
	player Player

	mu     sync.Mutex
	cancel context.CancelFunc // cancels the in-flight utterance

	// playMu serializes playback so an interrupted utterance has fully
	// released the device before its replacement starts.
	playMu sync.Mutex
}

// NewSpeaker creates a speaker over the given engine and output device.
func NewSpeaker(synth Synthesizer, player Player) *Speaker {
	return &Speaker{synth: synth, player: player}
}

// Speak voices the text asynchronously, interrupting any utterance
// already in flight. Empty text only interrupts.
func (s *Speaker) Speak(text string) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.player.Stop()

	if text == "" {
		s.cancel = nil
		s.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	go s.utter(ctx, text)
}

func (s *Speaker) utter(ctx context.Context, text string) {
	wav, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Warn("speech synthesis failed", "err", err)
		}
		return
	}
	if len(wav) == 0 {
		return
	}

	s.playMu.Lock()
	defer s.playMu.Unlock()

	// A later Speak may have replaced this utterance while it waited for
	// the device.
	if ctx.Err() != nil {
		return
	}

	if err := s.player.Play(wav); err != nil {
		log.Warn("speech playback failed", "err", err)
	}
}

// Stop interrupts the current utterance without starting a new one.
func (s *Speaker) Stop() {
	s.Speak("")
}

// Close stops playback and releases the audio device.
func (s *Speaker) Close() error {
	s.Stop()
	return s.player.Close()
}
