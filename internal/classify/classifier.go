// Package classify maps skeleton canvases to fingerspelled letters using a
// pretrained convolutional model, refined by a static rule layer that
// disambiguates visually confusable letters.
package classify

import (
	"errors"

	"gocv.io/x/gocv"
)

// Control symbols emitted alongside letters. They flow through the same
// debounce path as letters and are interpreted by the pipeline.
const (
	// SymbolSpace ends the current word.
	SymbolSpace = ' '
	// SymbolBackspace removes the last buffered rune.
	SymbolBackspace = '\b'
	// SymbolNone means no symbol could be recognized this cycle.
	SymbolNone = rune(0)
)

// NumLetters is the size of the classifier's output distribution (A-Z).
const NumLetters = 26

// DefaultMinConfidence is the floor below which predictions are silently
// discarded rather than surfaced.
const DefaultMinConfidence = 0.35

// Sentinel classification errors.
var (
	// ErrModelLoad is returned when the pretrained model cannot be loaded.
	ErrModelLoad = errors.New("classify: model load failed")
	// ErrBadCanvas is returned when the input canvas has the wrong shape.
	ErrBadCanvas = errors.New("classify: bad canvas input")
)

// Prediction is one classifier output: the most likely letter, its
// confidence, and the full score vector for the rule layer.
type Prediction struct {
	Symbol     rune
	Confidence float64
	Scores     [NumLetters]float64
}

// Runner returns the second most likely letter.
func (p Prediction) Runner() rune {
	best, second := -1, -1
	for i, s := range p.Scores {
		if best < 0 || s > p.Scores[best] {
			second = best
			best = i
		} else if second < 0 || s > p.Scores[second] {
			second = i
		}
	}
	if second < 0 {
		return SymbolNone
	}
	return rune('A' + second)
}

// Classifier is the letter classification contract. The production
// implementation wraps an opaque pretrained network; tests substitute a
// scripted mock.
type Classifier interface {
	// Classify maps a skeleton canvas to a letter distribution.
	Classify(canvas *gocv.Mat) (Prediction, error)

	// Close releases model resources.
	Close() error
}
