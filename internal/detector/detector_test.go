package detector

import (
	"math"
	"testing"
)

func TestPixelPoints(t *testing.T) {
	h := &HandLandmarks{}
	h.Points[Wrist] = Point3D{X: 0.5, Y: 0.5}
	h.Points[IndexTip] = Point3D{X: 0.25, Y: 0.75}

	pts := h.PixelPoints(640, 480)

	if pts[Wrist].X != 320 || pts[Wrist].Y != 240 {
		t.Errorf("wrist = (%v, %v), want (320, 240)", pts[Wrist].X, pts[Wrist].Y)
	}
	if pts[IndexTip].X != 160 || pts[IndexTip].Y != 360 {
		t.Errorf("index tip = (%v, %v), want (160, 360)", pts[IndexTip].X, pts[IndexTip].Y)
	}
}

func TestBounds(t *testing.T) {
	h := OpenPalmLandmarks()

	x, y, w, hgt := h.Bounds(640, 480)

	if w <= 0 || hgt <= 0 {
		t.Fatalf("degenerate bounds: w=%v h=%v", w, hgt)
	}

	// Every landmark must lie inside the box.
	for i, p := range h.PixelPoints(640, 480) {
		if p.X < x || p.X > x+w || p.Y < y || p.Y > y+hgt {
			t.Errorf("landmark %d (%v, %v) outside bounds", i, p.X, p.Y)
		}
	}
}

func TestProjectToCanvas_Centered(t *testing.T) {
	h := OpenPalmLandmarks()

	canvas := ProjectToCanvas(&h, 640, 480)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range canvas.Points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	// All points inside the canvas.
	if minX < 0 || minY < 0 || maxX > CanvasSize || maxY > CanvasSize {
		t.Fatalf("skeleton escapes canvas: (%v,%v)-(%v,%v)", minX, minY, maxX, maxY)
	}

	// Bounding box roughly centered.
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	if math.Abs(cx-CanvasSize/2) > 1 || math.Abs(cy-CanvasSize/2) > 1 {
		t.Errorf("skeleton center = (%v, %v), want near (%d, %d)", cx, cy, CanvasSize/2, CanvasSize/2)
	}
}

func TestProjectToCanvas_ScalesLargeHands(t *testing.T) {
	// A hand spanning the whole frame is larger than the canvas and must
	// be scaled down to fit inside the margins.
	h := &HandLandmarks{}
	for i := range h.Points {
		h.Points[i] = Point3D{X: float64(i) / NumLandmarks, Y: float64(i) / NumLandmarks}
	}
	h.Points[0] = Point3D{X: 0, Y: 0}
	h.Points[NumLandmarks-1] = Point3D{X: 1, Y: 1}

	canvas := ProjectToCanvas(h, 1920, 1080)

	for i, p := range canvas.Points {
		if p.X < CanvasMargin-1 || p.X > CanvasSize-CanvasMargin+1 ||
			p.Y < CanvasMargin-1 || p.Y > CanvasSize-CanvasMargin+1 {
			t.Errorf("landmark %d (%v, %v) outside usable area", i, p.X, p.Y)
		}
	}
}

func TestCanvasHand_Render(t *testing.T) {
	h := OpenPalmLandmarks()
	canvas := ProjectToCanvas(&h, 640, 480)

	mat := canvas.Render()
	defer mat.Close()

	if mat.Rows() != CanvasSize || mat.Cols() != CanvasSize {
		t.Errorf("canvas size = %dx%d, want %dx%d", mat.Cols(), mat.Rows(), CanvasSize, CanvasSize)
	}
	if mat.Empty() {
		t.Error("rendered canvas is empty")
	}
}

func TestMockDetector(t *testing.T) {
	m := NewMockDetector()

	hands, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 0 {
		t.Errorf("unconfigured mock returned %d hands, want 0", len(hands))
	}

	m.SetHands([]HandLandmarks{FistLandmarks()})
	hands, err = m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 1 {
		t.Errorf("got %d hands, want 1", len(hands))
	}
}
