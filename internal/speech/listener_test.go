package speech

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestListener_DeliversTranscript(t *testing.T) {
	record := func(ctx context.Context, d time.Duration) (string, error) {
		return "HELLO WORLD", nil
	}
	l := NewListenerWithRecorder(record, time.Second)

	ch, err := l.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	res := <-ch
	if res.Err != nil {
		t.Fatalf("Result.Err = %v", res.Err)
	}
	if res.Text != "HELLO WORLD" {
		t.Errorf("Result.Text = %q, want HELLO WORLD", res.Text)
	}

	if _, more := <-ch; more {
		t.Error("channel delivered a second result")
	}
	if l.Active() {
		t.Error("Active() after completion")
	}
}

func TestListener_SingleSession(t *testing.T) {
	record := func(ctx context.Context, d time.Duration) (string, error) {
		<-ctx.Done()
		return "", nil
	}
	l := NewListenerWithRecorder(record, time.Minute)

	ch, err := l.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := l.Start(); !errors.Is(err, ErrListenerBusy) {
		t.Errorf("second Start = %v, want ErrListenerBusy", err)
	}

	l.Stop()
	res := <-ch
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("Result.Err = %v, want context.Canceled", res.Err)
	}

	// A finished session frees the slot.
	ch2, err := l.Start()
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	l.Stop()
	<-ch2
}

func TestListener_CancelDiscardsLateTranscript(t *testing.T) {
	record := func(ctx context.Context, d time.Duration) (string, error) {
		// The recognizer finishes after cancellation and still produces
		// text; it must not surface.
		<-ctx.Done()
		return "TOO LATE", nil
	}
	l := NewListenerWithRecorder(record, time.Minute)

	ch, err := l.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	l.Stop()

	res := <-ch
	if res.Text != "" {
		t.Errorf("Result.Text = %q after cancel, want empty", res.Text)
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("Result.Err = %v, want context.Canceled", res.Err)
	}
}

func TestListener_NoSpeech(t *testing.T) {
	for _, raw := range []string{"", "   ", "[BLANK_AUDIO]", "(silence)", "Thank you."} {
		record := func(ctx context.Context, d time.Duration) (string, error) {
			return raw, nil
		}
		l := NewListenerWithRecorder(record, time.Second)

		ch, err := l.Start()
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		res := <-ch
		if !errors.Is(res.Err, ErrNoSpeech) {
			t.Errorf("raw %q: Result.Err = %v, want ErrNoSpeech", raw, res.Err)
		}
	}
}

func TestListener_RecognizerFailure(t *testing.T) {
	record := func(ctx context.Context, d time.Duration) (string, error) {
		return "", errors.New("microphone unavailable")
	}
	l := NewListenerWithRecorder(record, time.Second)

	ch, err := l.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	res := <-ch
	if !errors.Is(res.Err, ErrRecognition) {
		t.Errorf("Result.Err = %v, want ErrRecognition", res.Err)
	}
}

func TestCleanTranscript(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"newlines", "hello\nworld\r\n", "hello world"},
		{"junk stripped", "[BLANK_AUDIO] hello", "hello"},
		{"annotation stripped", "(dog barking) hello there", "hello there"},
		{"hallucination discarded", "Thanks for watching!", ""},
		{"double spaces collapsed", "hello   big  world", "hello big world"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanTranscript(tc.in); got != tc.want {
				t.Errorf("cleanTranscript(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractPCM(t *testing.T) {
	t.Run("silent wav round trip", func(t *testing.T) {
		wav := silentWAV(100)
		pcm, err := extractPCM(wav)
		if err != nil {
			t.Fatalf("extractPCM: %v", err)
		}
		if len(pcm) != 200 {
			t.Errorf("pcm length = %d, want 200", len(pcm))
		}
	})

	t.Run("rejects short data", func(t *testing.T) {
		if _, err := extractPCM([]byte("RIFF")); err == nil {
			t.Error("expected error for truncated data")
		}
	})

	t.Run("rejects non wav", func(t *testing.T) {
		junk := make([]byte, 64)
		if _, err := extractPCM(junk); err == nil {
			t.Error("expected error for non-WAV data")
		}
	})
}
