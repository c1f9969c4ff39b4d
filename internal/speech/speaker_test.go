package speech

import (
	"errors"
	"testing"
	"time"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestSpeaker_Speaks(t *testing.T) {
	synth := NewMockSynthesizer()
	player := NewMockPlayer()
	s := NewSpeaker(synth, player)
	defer s.Close()

	s.Speak("HELLO WORLD")

	waitFor(t, "playback", func() bool { return player.Plays() == 1 })

	texts := synth.Texts()
	if len(texts) != 1 || texts[0] != "HELLO WORLD" {
		t.Errorf("synthesized %v, want [HELLO WORLD]", texts)
	}
}

func TestSpeaker_LastCallWins(t *testing.T) {
	synth := NewMockSynthesizer()
	player := NewMockPlayer()
	s := NewSpeaker(synth, player)
	defer s.Close()

	player.Hold()
	s.Speak("FIRST")
	waitFor(t, "first playback", func() bool { return player.Plays() == 1 })

	// The second call must interrupt the first, never overlap it.
	s.Speak("SECOND")
	waitFor(t, "second playback", func() bool { return player.Plays() == 2 })

	if n := player.Overlaps(); n != 0 {
		t.Errorf("playback overlapped %d times", n)
	}
	if n := player.Stops(); n == 0 {
		t.Error("first utterance was never interrupted")
	}
}

func TestSpeaker_RapidCallsNeverOverlap(t *testing.T) {
	synth := NewMockSynthesizer()
	player := NewMockPlayer()
	s := NewSpeaker(synth, player)
	defer s.Close()

	for i := 0; i < 5; i++ {
		s.Speak("WORDS IN A ROW")
	}

	waitFor(t, "playback to settle", func() bool { return player.Plays() >= 1 })
	time.Sleep(50 * time.Millisecond)

	if n := player.Overlaps(); n != 0 {
		t.Errorf("playback overlapped %d times", n)
	}
}

func TestSpeaker_SynthesisFailureDoesNotPlay(t *testing.T) {
	synth := NewMockSynthesizer()
	synth.SetError(errors.New("engine down"))
	player := NewMockPlayer()
	s := NewSpeaker(synth, player)
	defer s.Close()

	s.Speak("HELLO")
	time.Sleep(50 * time.Millisecond)

	if n := player.Plays(); n != 0 {
		t.Errorf("Plays() = %d after synthesis failure, want 0", n)
	}
}

func TestSpeaker_StopInterrupts(t *testing.T) {
	synth := NewMockSynthesizer()
	player := NewMockPlayer()
	s := NewSpeaker(synth, player)
	defer s.Close()

	player.Hold()
	s.Speak("A LONG SENTENCE")
	waitFor(t, "playback", func() bool { return player.Plays() == 1 })

	s.Stop()
	waitFor(t, "interrupt", func() bool { return player.Stops() > 0 })
}

func TestSpeaker_EmptyTextOnlyInterrupts(t *testing.T) {
	synth := NewMockSynthesizer()
	player := NewMockPlayer()
	s := NewSpeaker(synth, player)
	defer s.Close()

	s.Speak("")
	time.Sleep(20 * time.Millisecond)

	if n := player.Plays(); n != 0 {
		t.Errorf("Plays() = %d for empty text, want 0", n)
	}
	if texts := synth.Texts(); len(texts) != 0 {
		t.Errorf("synthesized %v for empty text", texts)
	}
}
