package fingerspell

import (
	"testing"
	"time"
)

// testLibrary returns a library with a stub image per letter.
func testLibrary() *Library {
	images := make(map[rune][]byte, 26)
	for letter := 'A'; letter <= 'Z'; letter++ {
		images[letter] = []byte{byte(letter)}
	}
	return NewLibrary(images)
}

func collectFrames(t *testing.T, p *Player, n int) []Frame {
	t.Helper()
	frames := make([]Frame, 0, n)
	for len(frames) < n {
		select {
		case f := <-p.C():
			frames = append(frames, f)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d frames", len(frames), n)
		}
	}
	return frames
}

func TestBuildSequence(t *testing.T) {
	lib := testLibrary()

	t.Run("length equals alphabetic count", func(t *testing.T) {
		frames := BuildSequence("HELLO, WORLD! 123", lib)
		if len(frames) != 10 {
			t.Errorf("len = %d, want 10", len(frames))
		}
	})

	t.Run("non letters skipped", func(t *testing.T) {
		frames := BuildSequence("GO 2 HOME", lib)
		want := "GOHOME"
		if len(frames) != len(want) {
			t.Fatalf("len = %d, want %d", len(frames), len(want))
		}
		for i, f := range frames {
			if f.Letter != rune(want[i]) {
				t.Errorf("frame %d letter = %q, want %q", i, f.Letter, want[i])
			}
			if f.Index != i || f.Total != len(want) {
				t.Errorf("frame %d position = %d/%d, want %d/%d", i, f.Index, f.Total, i, len(want))
			}
		}
	})

	t.Run("lowercase input", func(t *testing.T) {
		frames := BuildSequence("hi", lib)
		if len(frames) != 2 || frames[0].Letter != 'H' || frames[1].Letter != 'I' {
			t.Errorf("got %v", frames)
		}
	})

	t.Run("nothing playable", func(t *testing.T) {
		if frames := BuildSequence("42 !?", lib); len(frames) != 0 {
			t.Errorf("len = %d, want 0", len(frames))
		}
	})
}

func TestPlayer_PlaysThrough(t *testing.T) {
	p := NewPlayer(testLibrary(), 5*time.Millisecond)
	defer p.Stop()

	p.Play("HI")
	frames := collectFrames(t, p, 2)

	if frames[0].Letter != 'H' || frames[1].Letter != 'I' {
		t.Errorf("letters = %q %q, want H I", frames[0].Letter, frames[1].Letter)
	}

	deadline := time.Now().Add(time.Second)
	for p.Status().State != StateDone {
		if time.Now().After(deadline) {
			t.Fatalf("player never finished, state %v", p.Status().State)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestPlayer_PauseResume(t *testing.T) {
	p := NewPlayer(testLibrary(), 15*time.Millisecond)
	defer p.Stop()

	p.Play("ABC")
	first := collectFrames(t, p, 1)[0]
	if first.Letter != 'A' {
		t.Fatalf("first letter = %q, want A", first.Letter)
	}

	p.Pause()
	if st := p.Status().State; st != StatePaused {
		t.Fatalf("state = %v, want paused", st)
	}

	// No frames while paused.
	select {
	case f := <-p.C():
		t.Fatalf("received %q while paused", f.Letter)
	case <-time.After(60 * time.Millisecond):
	}

	p.Resume()
	rest := collectFrames(t, p, 2)
	if rest[0].Letter != 'B' || rest[1].Letter != 'C' {
		t.Errorf("resumed letters = %q %q, want B C", rest[0].Letter, rest[1].Letter)
	}
}

func TestPlayer_Restart(t *testing.T) {
	p := NewPlayer(testLibrary(), 5*time.Millisecond)
	defer p.Stop()

	p.Play("AB")
	collectFrames(t, p, 2)

	p.Restart()
	frames := collectFrames(t, p, 2)
	if frames[0].Letter != 'A' || frames[0].Index != 0 {
		t.Errorf("restart began at %q index %d, want A index 0", frames[0].Letter, frames[0].Index)
	}
}

func TestPlayer_NewTextReplacesPlayback(t *testing.T) {
	p := NewPlayer(testLibrary(), 10*time.Millisecond)
	defer p.Stop()

	p.Play("AAAAAAAA")
	collectFrames(t, p, 1)

	p.Play("Z")
	deadline := time.Now().Add(time.Second)
	for {
		select {
		case f := <-p.C():
			if f.Letter == 'Z' {
				return
			}
		case <-time.After(time.Until(deadline)):
			t.Fatal("never saw the replacement playback")
		}
	}
}

func TestPlayer_EmptyTextStaysIdle(t *testing.T) {
	p := NewPlayer(testLibrary(), 5*time.Millisecond)
	defer p.Stop()

	p.Play("123 !")
	if st := p.Status(); st.State != StateIdle || st.Total != 0 {
		t.Errorf("status = %+v, want idle empty", st)
	}
}

func TestPlayer_Stop(t *testing.T) {
	p := NewPlayer(testLibrary(), 10*time.Millisecond)

	p.Play("ABCDEF")
	collectFrames(t, p, 1)
	p.Stop()

	if st := p.Status().State; st != StateIdle {
		t.Errorf("state after Stop = %v, want idle", st)
	}
}
