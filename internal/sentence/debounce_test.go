package sentence

import "testing"

func TestDebouncer_CommitsExactlyOnce(t *testing.T) {
	// Any stable run of length >= threshold must produce exactly one
	// commit, for every legal threshold down to 1.
	for threshold := 1; threshold <= 5; threshold++ {
		for runLen := threshold; runLen <= threshold*4; runLen++ {
			d := NewDebouncer(threshold)
			commits := 0

			for i := 0; i < runLen; i++ {
				if _, ok := d.Observe('A'); ok {
					commits++
				}
			}

			if commits != 1 {
				t.Errorf("threshold %d, run of %d: got %d commits, want 1",
					threshold, runLen, commits)
			}
		}
	}
}

func TestDebouncer_ThresholdOneCommitsImmediately(t *testing.T) {
	d := NewDebouncer(1)

	sym, ok := d.Observe('A')
	if !ok || sym != 'A' {
		t.Fatalf("Observe = (%q, %v), want immediate commit of A", sym, ok)
	}

	// Holding the sign still commits only once.
	for i := 0; i < 5; i++ {
		if _, ok := d.Observe('A'); ok {
			t.Fatal("held sign committed twice at threshold 1")
		}
	}

	// Each new symbol commits on its first observation.
	if sym, ok := d.Observe('B'); !ok || sym != 'B' {
		t.Errorf("Observe = (%q, %v), want immediate commit of B", sym, ok)
	}
}

func TestDebouncer_ShortRunNeverCommits(t *testing.T) {
	d := NewDebouncer(5)

	for i := 0; i < 4; i++ {
		if _, ok := d.Observe('B'); ok {
			t.Fatalf("committed after %d observations, threshold is 5", i+1)
		}
	}
}

func TestDebouncer_ChangeResetsRun(t *testing.T) {
	d := NewDebouncer(3)

	d.Observe('A')
	d.Observe('A')
	d.Observe('C') // interrupts the run
	d.Observe('A')
	d.Observe('A')

	if _, ok := d.Observe('C'); ok {
		t.Error("C committed with only one consecutive observation")
	}
}

func TestDebouncer_RecommitAfterChange(t *testing.T) {
	d := NewDebouncer(2)

	d.Observe('A')
	sym, ok := d.Observe('A')
	if !ok || sym != 'A' {
		t.Fatalf("Observe = (%q, %v), want first commit of A", sym, ok)
	}

	// Holding the same sign must not commit again.
	for i := 0; i < 10; i++ {
		if _, ok := d.Observe('A'); ok {
			t.Fatal("held sign committed twice")
		}
	}

	// After switching to another symbol, A may commit again.
	d.Observe('B')
	d.Observe('A')
	if _, ok := d.Observe('A'); !ok {
		t.Error("A did not commit after the hand changed")
	}
}

func TestDebouncer_ResetClearsRun(t *testing.T) {
	d := NewDebouncer(2)

	d.Observe('A')
	d.Reset()

	if _, ok := d.Observe('A'); ok {
		t.Error("committed after Reset with a single observation")
	}
}

func TestDebouncer_DefaultThreshold(t *testing.T) {
	d := NewDebouncer(0)

	if d.threshold != DefaultStableTicks {
		t.Errorf("threshold = %d, want %d", d.threshold, DefaultStableTicks)
	}
}
