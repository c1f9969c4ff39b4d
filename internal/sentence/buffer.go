// Package sentence accumulates recognized letters into words and a running
// sentence for the Mudra sign language translator.
package sentence

import (
	"strings"
	"sync"
	"unicode"
)

// Buffer holds the text recognized so far. Letters are partitioned into
// words by spaces. The buffer is the only recognition state that outlives
// a single capture cycle; it is mutated by the pipeline and read by the
// presentation layer, so access is guarded.
type Buffer struct {
	mu    sync.RWMutex
	runes []rune
}

// NewBuffer creates an empty sentence buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds a single letter to the buffer. Non-letter runes are ignored;
// letters are stored uppercase, matching the fingerspelling alphabet.
func (b *Buffer) Append(letter rune) {
	if !unicode.IsLetter(letter) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.runes = append(b.runes, unicode.ToUpper(letter))
}

// AppendSpace ends the current word. Leading and repeated spaces are
// collapsed so the buffer never contains empty words.
func (b *Buffer) AppendSpace() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.runes) == 0 || b.runes[len(b.runes)-1] == ' ' {
		return
	}
	b.runes = append(b.runes, ' ')
}

// Backspace removes the last rune. Calling it on an empty buffer is a no-op.
func (b *Buffer) Backspace() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.runes) == 0 {
		return
	}
	b.runes = b.runes[:len(b.runes)-1]
}

// Clear resets the buffer to empty.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.runes = nil
}

// Sentence returns the full accumulated text.
func (b *Buffer) Sentence() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.TrimRight(string(b.runes), " ")
}

// CurrentWord returns the partial word after the last space, or the whole
// buffer if no space has been entered yet.
func (b *Buffer) CurrentWord() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s := string(b.runes)
	if idx := strings.LastIndex(s, " "); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// ApplySuggestion replaces the current partial word with the given
// candidate. An empty candidate leaves the buffer unchanged.
func (b *Buffer) ApplySuggestion(word string) {
	word = strings.TrimSpace(word)
	if word == "" {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	s := string(b.runes)
	idx := strings.LastIndex(s, " ")
	b.runes = []rune(s[:idx+1] + strings.ToUpper(word))
}

// Len returns the number of runes currently buffered.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.runes)
}
