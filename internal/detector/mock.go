package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of Detector with scripted results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a detector that reports no hands until configured.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// FistLandmarks returns a closed-fist pose: all fingers curled into the
// palm with the thumb alongside, the base shape of the A/S/E letter group.
func FistLandmarks() HandLandmarks {
	lm := HandLandmarks{Handedness: "Right", Score: 0.95}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	lm.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.76}
	lm.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.71}
	lm.Points[ThumbIP] = Point3D{X: 0.61, Y: 0.66}
	lm.Points[ThumbTip] = Point3D{X: 0.60, Y: 0.62}

	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.66}
	lm.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.61, Z: -0.03}
	lm.Points[IndexDIP] = Point3D{X: 0.54, Y: 0.64, Z: -0.05}
	lm.Points[IndexTip] = Point3D{X: 0.53, Y: 0.68, Z: -0.04}

	lm.Points[MiddleMCP] = Point3D{X: 0.51, Y: 0.65}
	lm.Points[MiddlePIP] = Point3D{X: 0.51, Y: 0.59, Z: -0.03}
	lm.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.63, Z: -0.05}
	lm.Points[MiddleTip] = Point3D{X: 0.49, Y: 0.68, Z: -0.04}

	lm.Points[RingMCP] = Point3D{X: 0.47, Y: 0.66}
	lm.Points[RingPIP] = Point3D{X: 0.47, Y: 0.60, Z: -0.03}
	lm.Points[RingDIP] = Point3D{X: 0.46, Y: 0.64, Z: -0.05}
	lm.Points[RingTip] = Point3D{X: 0.45, Y: 0.68, Z: -0.04}

	lm.Points[PinkyMCP] = Point3D{X: 0.43, Y: 0.68}
	lm.Points[PinkyPIP] = Point3D{X: 0.43, Y: 0.63, Z: -0.03}
	lm.Points[PinkyDIP] = Point3D{X: 0.42, Y: 0.66, Z: -0.05}
	lm.Points[PinkyTip] = Point3D{X: 0.41, Y: 0.70, Z: -0.04}

	return lm
}

// OpenPalmLandmarks returns a flat open hand, all fingers extended upward.
func OpenPalmLandmarks() HandLandmarks {
	lm := HandLandmarks{Handedness: "Right", Score: 0.95}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	lm.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.75}
	lm.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70}
	lm.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65}
	lm.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60}

	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.66}
	lm.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.55}
	lm.Points[IndexDIP] = Point3D{X: 0.57, Y: 0.45}
	lm.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.65}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52}
	lm.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40}
	lm.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28}

	lm.Points[RingMCP] = Point3D{X: 0.45, Y: 0.66}
	lm.Points[RingPIP] = Point3D{X: 0.44, Y: 0.54}
	lm.Points[RingDIP] = Point3D{X: 0.43, Y: 0.44}
	lm.Points[RingTip] = Point3D{X: 0.42, Y: 0.34}

	lm.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.68}
	lm.Points[PinkyPIP] = Point3D{X: 0.38, Y: 0.58}
	lm.Points[PinkyDIP] = Point3D{X: 0.36, Y: 0.50}
	lm.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.42}

	return lm
}

// PointingLandmarks returns an index-up pose with the remaining fingers
// curled onto the thumb, the base shape of the D letter group.
func PointingLandmarks() HandLandmarks {
	lm := FistLandmarks()

	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.66}
	lm.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.54}
	lm.Points[IndexDIP] = Point3D{X: 0.57, Y: 0.44}
	lm.Points[IndexTip] = Point3D{X: 0.58, Y: 0.34}

	return lm
}
