package classify

import (
	"errors"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

func TestMockClassifier(t *testing.T) {
	canvas := gocv.NewMatWithSize(1, 1, gocv.MatTypeCV8UC3)
	defer canvas.Close()

	t.Run("fixed symbol", func(t *testing.T) {
		m := NewMockClassifier('K')

		pred, err := m.Classify(&canvas)
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if pred.Symbol != 'K' || pred.Confidence != 1.0 {
			t.Errorf("got %q at %.2f, want K at 1.00", pred.Symbol, pred.Confidence)
		}
	})

	t.Run("queue order and repeat", func(t *testing.T) {
		m := NewMockClassifier('A')
		m.SetQueue(Fixed('H', 0.8), Fixed('I', 0.7))

		want := []rune{'H', 'I', 'I', 'I'}
		for i, sym := range want {
			pred, err := m.Classify(&canvas)
			if err != nil {
				t.Fatalf("call %d: %v", i, err)
			}
			if pred.Symbol != sym {
				t.Errorf("call %d: got %q, want %q", i, pred.Symbol, sym)
			}
		}
		if m.Calls() != len(want) {
			t.Errorf("Calls() = %d, want %d", m.Calls(), len(want))
		}
	})

	t.Run("scripted error", func(t *testing.T) {
		m := NewMockClassifier('A')
		m.SetError(ErrBadCanvas)

		if _, err := m.Classify(&canvas); !errors.Is(err, ErrBadCanvas) {
			t.Errorf("Classify error = %v, want ErrBadCanvas", err)
		}
	})
}

func TestNewCNN_MissingModel(t *testing.T) {
	config := DefaultCNNConfig()
	config.ModelPath = filepath.Join(t.TempDir(), "absent.onnx")

	_, err := NewCNN(config)
	if !errors.Is(err, ErrModelLoad) {
		t.Errorf("NewCNN error = %v, want ErrModelLoad", err)
	}
}

func TestFixed_Scores(t *testing.T) {
	p := Fixed('Q', 0.75)
	if p.Scores['Q'-'A'] != 0.75 {
		t.Errorf("Scores[Q] = %v, want 0.75", p.Scores['Q'-'A'])
	}

	// Control symbols have no score slot.
	p = Fixed(SymbolSpace, 0.9)
	for i, s := range p.Scores {
		if s != 0 {
			t.Errorf("Scores[%d] = %v, want 0", i, s)
		}
	}
}
