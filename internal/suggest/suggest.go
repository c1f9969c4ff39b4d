// Package suggest provides word completion candidates for the partial word
// currently being fingerspelled.
package suggest

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
)

// DefaultMaxCandidates is the number of completions offered to the user,
// matching the four suggestion slots in the interface.
const DefaultMaxCandidates = 4

// Engine ranks dictionary words against a partial word. It is purely
// functional: the word list is fixed at construction and lookups carry no
// state between calls.
type Engine struct {
	words []string
	max   int
}

// New creates an engine over the given word list. Words are lowercased and
// deduplicated; empty entries are dropped.
func New(words []string, maxCandidates int) *Engine {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}

	seen := make(map[string]struct{}, len(words))
	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		cleaned = append(cleaned, w)
	}

	return &Engine{words: cleaned, max: maxCandidates}
}

// NewFromFile loads a word list with one word per line, such as the system
// dictionary. Lines that are not purely alphabetic are skipped.
func NewFromFile(path string, maxCandidates int) (*Engine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" || !isAlphabetic(w) {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	return New(words, maxCandidates), nil
}

// Suggest returns up to the configured number of ranked completions for the
// partial word. An empty partial word yields an empty list.
func (e *Engine) Suggest(partial string) []string {
	partial = strings.ToLower(strings.TrimSpace(partial))
	if partial == "" {
		return nil
	}

	matches := fuzzy.Find(partial, e.words)

	out := make([]string, 0, e.max)
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == e.max {
			break
		}
	}
	return out
}

// WordCount returns the size of the loaded dictionary.
func (e *Engine) WordCount() int {
	return len(e.words)
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
