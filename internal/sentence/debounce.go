package sentence

// DefaultStableTicks is the number of consecutive identical predictions
// required before a symbol is committed. At the active frame rate this is
// roughly three quarters of a second of holding a sign.
const DefaultStableTicks = 12

// Debouncer suppresses transient misclassifications by requiring a
// predicted symbol to stay stable across a number of consecutive cycles
// before it is accepted. Once a symbol has been committed, the same held
// sign never commits again; the hand has to change (or leave the frame)
// first.
//
// A Debouncer is driven from the single pipeline goroutine and needs no
// locking.
type Debouncer struct {
	threshold int
	current   rune
	count     int
	committed bool
}

// NewDebouncer creates a debouncer that commits after threshold consecutive
// observations of the same symbol. Thresholds below 1 fall back to
// DefaultStableTicks.
func NewDebouncer(threshold int) *Debouncer {
	if threshold < 1 {
		threshold = DefaultStableTicks
	}
	return &Debouncer{threshold: threshold}
}

// Observe feeds one predicted symbol into the debouncer. It returns the
// symbol and true exactly once per stable run: on the observation that
// reaches the stability threshold.
func (d *Debouncer) Observe(symbol rune) (rune, bool) {
	if symbol != d.current {
		d.current = symbol
		d.count = 1
		d.committed = false
	} else {
		d.count++
	}

	if d.committed || d.count < d.threshold {
		return 0, false
	}

	d.committed = true
	return d.current, true
}

// Reset clears the stability run, e.g. when no hand is in the frame.
func (d *Debouncer) Reset() {
	d.current = 0
	d.count = 0
	d.committed = false
}
