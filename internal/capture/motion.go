package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Motion detection tuning.
const (
	// blurKernel is the Gaussian blur kernel size used to suppress sensor
	// noise before differencing.
	blurKernel = 21
	// diffThreshold is the per-pixel intensity delta that counts as change.
	diffThreshold = 25
	// DefaultMotionThreshold is the percentage of changed pixels that
	// counts as motion. Signing in front of the camera comfortably clears
	// it; sensor noise does not.
	DefaultMotionThreshold = 1.0
)

// MotionDetector detects movement between consecutive frames by blurred
// grayscale differencing. The pipeline uses it to hold the camera at a low
// idle frame rate until someone starts signing.
type MotionDetector struct {
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

// NewMotionDetector creates a detector. The threshold is the percentage of
// pixels that must change between frames; values <= 0 use the default.
func NewMotionDetector(threshold float64) *MotionDetector {
	if threshold <= 0 {
		threshold = DefaultMotionThreshold
	}
	return &MotionDetector{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Detect compares the frame to the previous one and reports whether motion
// was seen, along with the percentage of pixels that changed. The first
// frame establishes the baseline and never reports motion.
func (m *MotionDetector) Detect(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: blurKernel, Y: blurKernel}, 0, 0, gocv.BorderDefault)

	if !m.initialized {
		blurred.CopyTo(&m.prevGray)
		m.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, diffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	total := thresh.Rows() * thresh.Cols()
	changePercent := float64(nonZero) / float64(total) * 100.0

	blurred.CopyTo(&m.prevGray)

	return changePercent > m.threshold, changePercent
}

// Reset drops the baseline so the next frame starts a fresh comparison.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.prevGray.Empty() {
		m.prevGray.Close()
		m.prevGray = gocv.NewMat()
	}
	m.initialized = false
}

// Close releases detector resources.
func (m *MotionDetector) Close() {
	m.Reset()
}

// SetThreshold updates the motion threshold. Values <= 0 are ignored.
func (m *MotionDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.threshold = threshold
}
