// Package detector provides hand landmark extraction for the Mudra sign
// language translator. The extractor itself is an opaque external
// capability; this package defines its contract and the landmark geometry
// used downstream.
package detector

import "math"

// Hand landmark indices following the MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D is a landmark position. X and Y are normalized to the frame
// (0..1); Z is relative depth as reported by the extractor.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Point2D is a landmark position in pixel space, used on the skeleton
// canvas and by the rule refinement layer.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance to another 2D point.
func (p Point2D) Dist(q Point2D) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// HandLandmarks holds the 21 landmarks of one detected hand.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// PixelPoints converts the normalized landmarks to pixel coordinates for a
// frame of the given dimensions.
func (h *HandLandmarks) PixelPoints(width, height int) [NumLandmarks]Point2D {
	var pts [NumLandmarks]Point2D
	for i, p := range h.Points {
		pts[i] = Point2D{X: p.X * float64(width), Y: p.Y * float64(height)}
	}
	return pts
}

// Bounds returns the pixel-space bounding box of the hand as (minX, minY,
// width, height) for a frame of the given dimensions.
func (h *HandLandmarks) Bounds(width, height int) (x, y, w, hgt float64) {
	pts := h.PixelPoints(width, height)

	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	return minX, minY, maxX - minX, maxY - minY
}
