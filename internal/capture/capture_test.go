package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func testFrame(t *testing.T, fill uint8) *gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(fill), float64(fill), float64(fill), 0),
		DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3,
	)
	t.Cleanup(func() { mat.Close() })
	return &mat
}

func TestMockCamera_Playback(t *testing.T) {
	frames := []*gocv.Mat{testFrame(t, 0), testFrame(t, 128)}
	cam := NewMockCamera(frames, false)

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("ReadFrame before Open: err = %v, want ErrNotOpen", err)
	}

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer cam.Close()

	for i := 0; i < len(frames); i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: ReadFrame() error = %v", i, err)
		}
		f.Close()
	}

	// Exhausted, non-looping.
	if _, err := cam.ReadFrame(); err == nil {
		t.Error("expected error after sequence exhausted")
	}
}

func TestMockCamera_Loop(t *testing.T) {
	cam := NewMockCamera([]*gocv.Mat{testFrame(t, 10)}, true)
	if err := cam.Open(); err != nil {
		t.Fatal(err)
	}
	defer cam.Close()

	for i := 0; i < 5; i++ {
		f, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("loop read %d: %v", i, err)
		}
		f.Close()
	}
}

func TestMockCamera_Rewind(t *testing.T) {
	cam := NewMockCamera([]*gocv.Mat{testFrame(t, 10)}, false)
	cam.Open()
	defer cam.Close()

	f, _ := cam.ReadFrame()
	f.Close()
	if _, err := cam.ReadFrame(); err == nil {
		t.Fatal("expected exhaustion")
	}

	cam.Rewind()
	f, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame after Rewind: %v", err)
	}
	f.Close()
}

func TestMotionDetector_FirstFrameIsBaseline(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	detected, change := m.Detect(testFrame(t, 0))
	if detected || change != 0 {
		t.Errorf("first frame: detected=%v change=%v, want baseline only", detected, change)
	}
}

func TestMotionDetector_DetectsChange(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	m.Detect(testFrame(t, 0))
	detected, change := m.Detect(testFrame(t, 200))

	if !detected {
		t.Errorf("no motion detected for full-frame change (%.2f%%)", change)
	}
}

func TestMotionDetector_StaticScene(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	m.Detect(testFrame(t, 100))
	detected, _ := m.Detect(testFrame(t, 100))

	if detected {
		t.Error("motion detected on identical frames")
	}
}

func TestMotionDetector_Reset(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	m.Detect(testFrame(t, 0))
	m.Reset()

	// After reset the next frame is a baseline again, even if different.
	detected, _ := m.Detect(testFrame(t, 255))
	if detected {
		t.Error("motion detected on post-reset baseline frame")
	}
}
