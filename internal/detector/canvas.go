package detector

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Canvas geometry. The classifier was trained on 400x400 skeleton drawings,
// so the projection target is fixed.
const (
	// CanvasSize is the side length of the square skeleton canvas.
	CanvasSize = 400
	// CanvasMargin keeps the skeleton away from the canvas edges.
	CanvasMargin = 20
)

// skeletonBones lists the landmark index pairs connected when drawing the
// hand skeleton: the five finger chains plus the palm outline.
var skeletonBones = [][2]int{
	{Wrist, ThumbCMC}, {ThumbCMC, ThumbMCP}, {ThumbMCP, ThumbIP}, {ThumbIP, ThumbTip},
	{IndexMCP, IndexPIP}, {IndexPIP, IndexDIP}, {IndexDIP, IndexTip},
	{MiddleMCP, MiddlePIP}, {MiddlePIP, MiddleDIP}, {MiddleDIP, MiddleTip},
	{RingMCP, RingPIP}, {RingPIP, RingDIP}, {RingDIP, RingTip},
	{PinkyMCP, PinkyPIP}, {PinkyPIP, PinkyDIP}, {PinkyDIP, PinkyTip},
	{IndexMCP, MiddleMCP}, {MiddleMCP, RingMCP}, {RingMCP, PinkyMCP},
	{Wrist, IndexMCP}, {Wrist, PinkyMCP},
}

var (
	boneColor  = color.RGBA{G: 255}
	jointColor = color.RGBA{R: 255}
)

// CanvasHand is a hand projected into canvas pixel space: centered,
// scaled to fit, ready for skeleton rendering and rule refinement.
type CanvasHand struct {
	Points [NumLandmarks]Point2D
}

// ProjectToCanvas maps a detected hand onto the square canvas. The hand's
// bounding box is centered and, if larger than the usable area, scaled down
// uniformly so the skeleton always fits.
func ProjectToCanvas(h *HandLandmarks, frameWidth, frameHeight int) CanvasHand {
	pts := h.PixelPoints(frameWidth, frameHeight)
	minX, minY, w, hgt := h.Bounds(frameWidth, frameHeight)

	usable := float64(CanvasSize - 2*CanvasMargin)
	scale := 1.0
	if longest := max(w, hgt); longest > usable {
		scale = usable / longest
	}

	offX := (float64(CanvasSize) - w*scale) / 2
	offY := (float64(CanvasSize) - hgt*scale) / 2

	var out CanvasHand
	for i, p := range pts {
		out.Points[i] = Point2D{
			X: (p.X-minX)*scale + offX,
			Y: (p.Y-minY)*scale + offY,
		}
	}
	return out
}

// Render draws the skeleton on a white canvas: green bones, red joints.
// This drawing is the normalized hand-region encoding fed to the letter
// classifier. The caller owns the returned Mat and must Close it.
func (c CanvasHand) Render() gocv.Mat {
	white := gocv.NewScalar(255, 255, 255, 0)
	canvas := gocv.NewMatWithSizeFromScalar(white, CanvasSize, CanvasSize, gocv.MatTypeCV8UC3)

	for _, bone := range skeletonBones {
		a := c.Points[bone[0]]
		b := c.Points[bone[1]]
		gocv.Line(&canvas, image.Pt(int(a.X), int(a.Y)), image.Pt(int(b.X), int(b.Y)), boneColor, 3)
	}

	for _, p := range c.Points {
		gocv.Circle(&canvas, image.Pt(int(p.X), int(p.Y)), 2, jointColor, 1)
	}

	return canvas
}
