package classify

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// CNNConfig holds settings for the pretrained convolutional classifier.
type CNNConfig struct {
	// ModelPath is the ONNX model file, consumed read-only at startup.
	ModelPath string
	// InputSize is the square side length the model expects.
	InputSize int
}

// DefaultCNNConfig returns settings matching the bundled model, which was
// trained on the 400x400 skeleton canvases produced by the detector.
func DefaultCNNConfig() CNNConfig {
	return CNNConfig{
		ModelPath: "models/fingerspell.onnx",
		InputSize: detector.CanvasSize,
	}
}

// CNN classifies skeleton canvases with a pretrained network loaded through
// the OpenCV DNN module. The model is opaque: loaded and invoked as-is.
type CNN struct {
	net    gocv.Net
	config CNNConfig
	mu     sync.Mutex
}

// NewCNN loads the model. A missing or unreadable model file is a fatal
// startup condition for the caller, reported as ErrModelLoad.
func NewCNN(cfg CNNConfig) (*CNN, error) {
	if cfg.InputSize <= 0 {
		cfg.InputSize = detector.CanvasSize
	}

	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelLoad, cfg.ModelPath, err)
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrModelLoad, cfg.ModelPath)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &CNN{net: net, config: cfg}, nil
}

// Classify runs one forward pass over the canvas and returns the letter
// distribution.
func (c *CNN) Classify(canvas *gocv.Mat) (Prediction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if canvas == nil || canvas.Empty() {
		return Prediction{}, ErrBadCanvas
	}

	size := image.Pt(c.config.InputSize, c.config.InputSize)
	blob := gocv.BlobFromImage(*canvas, 1.0/255.0, size, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	c.net.SetInput(blob, "")
	output := c.net.Forward("")
	defer output.Close()

	data, err := output.DataPtrFloat32()
	if err != nil {
		return Prediction{}, fmt.Errorf("classify: read output tensor: %w", err)
	}
	if len(data) < NumLetters {
		return Prediction{}, fmt.Errorf("classify: output has %d scores, want %d", len(data), NumLetters)
	}

	var pred Prediction
	best := 0
	for i := 0; i < NumLetters; i++ {
		pred.Scores[i] = float64(data[i])
		if pred.Scores[i] > pred.Scores[best] {
			best = i
		}
	}
	pred.Symbol = rune('A' + best)
	pred.Confidence = pred.Scores[best]

	return pred, nil
}

// Close releases the network.
func (c *CNN) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.net.Close()
}
