package classify

import (
	"gocv.io/x/gocv"
)

// MockClassifier is a scripted Classifier for tests. It returns queued
// predictions in order, repeating the last one when the queue runs out.
type MockClassifier struct {
	queue []Prediction
	err   error
	calls int
}

// NewMockClassifier creates a classifier that predicts the given letter
// with full confidence.
func NewMockClassifier(symbol rune) *MockClassifier {
	return &MockClassifier{queue: []Prediction{Fixed(symbol, 1.0)}}
}

// Fixed builds a prediction for a letter with the given confidence.
func Fixed(symbol rune, confidence float64) Prediction {
	p := Prediction{Symbol: symbol, Confidence: confidence}
	if symbol >= 'A' && symbol <= 'Z' {
		p.Scores[symbol-'A'] = confidence
	}
	return p
}

// SetQueue replaces the scripted predictions.
func (m *MockClassifier) SetQueue(preds ...Prediction) {
	m.queue = preds
	m.calls = 0
}

// SetError makes Classify fail.
func (m *MockClassifier) SetError(err error) {
	m.err = err
}

// Calls returns how many times Classify has been invoked.
func (m *MockClassifier) Calls() int {
	return m.calls
}

// Classify returns the next scripted prediction.
func (m *MockClassifier) Classify(canvas *gocv.Mat) (Prediction, error) {
	m.calls++
	if m.err != nil {
		return Prediction{}, m.err
	}
	if len(m.queue) == 0 {
		return Prediction{}, ErrBadCanvas
	}

	i := m.calls - 1
	if i >= len(m.queue) {
		i = len(m.queue) - 1
	}
	return m.queue[i], nil
}

// Close is a no-op.
func (m *MockClassifier) Close() error {
	return nil
}
