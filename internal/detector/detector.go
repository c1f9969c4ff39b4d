package detector

import "gocv.io/x/gocv"

// Detector is the contract for hand landmark extraction. Implementations
// are opaque: a frame goes in, zero or more hands come out.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice when no hand is in the frame.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds hand detection options.
type Config struct {
	// MaxHands is the maximum number of hands to detect. Fingerspelling
	// uses a single hand.
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns the detection settings used by the recognition
// pipeline.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}
