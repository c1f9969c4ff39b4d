// Package capture provides webcam frame acquisition using GoCV (OpenCV).
package capture

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Default camera settings. 640x480 keeps per-frame work cheap enough for
// the recognition loop.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultFPS    = 5
)

// Sentinel capture errors.
var (
	// ErrNotOpen is returned when reading from a camera that is not open.
	ErrNotOpen = errors.New("capture: camera is not open")
	// ErrEmptyFrame is returned when the device produces an empty frame.
	ErrEmptyFrame = errors.New("capture: empty frame")
)

// CameraConfig holds camera device settings.
type CameraConfig struct {
	DeviceID int
	Width    int
	Height   int
	FPS      int

	// Mirror horizontally flips frames so the feed behaves like a mirror,
	// which is what a signer facing the camera expects.
	Mirror bool
}

// DefaultCameraConfig returns the settings used by the recognition loop.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		DeviceID: 0,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		FPS:      DefaultFPS,
		Mirror:   true,
	}
}

// Camera is the frame source contract.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// webcam captures frames from a physical device via GoCV.
type webcam struct {
	config  CameraConfig
	capture *gocv.VideoCapture
	mu      sync.Mutex
	running bool
}

// NewCamera creates a camera for the given configuration. The device is not
// touched until Open is called.
func NewCamera(config CameraConfig) Camera {
	if config.Width <= 0 {
		config.Width = DefaultWidth
	}
	if config.Height <= 0 {
		config.Height = DefaultHeight
	}
	if config.FPS <= 0 {
		config.FPS = DefaultFPS
	}
	return &webcam{config: config}
}

// Open acquires the camera device and applies resolution and frame rate.
func (c *webcam) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(c.config.DeviceID)
	if err != nil {
		return fmt.Errorf("capture: open device %d: %w", c.config.DeviceID, err)
	}

	capture.Set(gocv.VideoCaptureFrameWidth, float64(c.config.Width))
	capture.Set(gocv.VideoCaptureFrameHeight, float64(c.config.Height))
	capture.Set(gocv.VideoCaptureFPS, float64(c.config.FPS))

	c.capture = capture
	c.running = true
	return nil
}

// Close releases the device.
func (c *webcam) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		c.running = false
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	c.running = false
	return err
}

// ReadFrame reads a single frame, mirrored if configured. The caller owns
// the returned Mat and must Close it.
func (c *webcam) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		return nil, ErrNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok {
		mat.Close()
		return nil, fmt.Errorf("capture: read from device %d failed", c.config.DeviceID)
	}
	if mat.Empty() {
		mat.Close()
		return nil, ErrEmptyFrame
	}

	if c.config.Mirror {
		gocv.Flip(mat, &mat, 1)
	}

	return &mat, nil
}

// SetFPS adjusts the capture frame rate. Non-positive values are ignored.
func (c *webcam) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.config.FPS = fps
	if c.capture != nil {
		c.capture.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

// FPS returns the current frame rate setting.
func (c *webcam) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.FPS
}

// IsOpen reports whether the device is held.
func (c *webcam) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
