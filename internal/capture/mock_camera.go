package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera plays back a fixed frame sequence for tests. With loop set it
// wraps around; otherwise it returns ErrNotOpen-style failures when
// exhausted so tests can exercise the skip-a-cycle path.
type MockCamera struct {
	frames  []*gocv.Mat
	index   int
	loop    bool
	fps     int
	mu      sync.Mutex
	running bool
}

// NewMockCamera creates a playback camera over the given frames.
func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	return &MockCamera{frames: frames, loop: loop, fps: DefaultFPS}
}

func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	c.index = 0
	return nil
}

func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	return nil
}

func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil, ErrNotOpen
	}
	if len(c.frames) == 0 {
		return nil, ErrEmptyFrame
	}

	if c.index >= len(c.frames) {
		if !c.loop {
			return nil, ErrEmptyFrame
		}
		c.index = 0
	}

	// Clone so callers can Close their copy freely.
	frame := c.frames[c.index].Clone()
	c.index++
	return &frame, nil
}

func (c *MockCamera) SetFPS(fps int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fps > 0 {
		c.fps = fps
	}
}

func (c *MockCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// SetFrames replaces the playback sequence and rewinds.
func (c *MockCamera) SetFrames(frames []*gocv.Mat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = frames
	c.index = 0
}

// Rewind restarts playback from the first frame.
func (c *MockCamera) Rewind() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = 0
}
