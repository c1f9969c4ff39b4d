package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// ErrServiceUnavailable is returned when the landmark service script cannot
// be located.
var ErrServiceUnavailable = errors.New("detector: hand landmark service not found")

// serviceIdleShutdown is how long the Python process may sit unused before
// it is stopped. It restarts lazily on the next detection.
const serviceIdleShutdown = 30 * time.Second

// MediaPipeDetector implements Detector by delegating to a MediaPipe hand
// landmark service running as a Python subprocess. Frames are sent as
// length-prefixed JPEG; results come back as one JSON line per frame.
type MediaPipeDetector struct {
	config    Config
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	idleTimer *time.Timer
}

// NewMediaPipeDetector creates the detector. The subprocess is started
// lazily on first detection; this only verifies the service script exists.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	if findServiceScript() == "" {
		return nil, ErrServiceUnavailable
	}
	return &MediaPipeDetector{config: config}, nil
}

// Detect sends one frame to the service and parses detected hands. At most
// config.MaxHands hands are returned.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureStarted(); err != nil {
		return nil, err
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := d.stdin.Write(length); err != nil {
		return nil, fmt.Errorf("write frame length: %w", err)
	}
	if _, err := d.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write frame data: %w", err)
	}

	line, err := d.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read service response: %w", err)
	}

	var response struct {
		Hands []wireHand `json:"hands"`
	}
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return nil, fmt.Errorf("parse service response: %w", err)
	}

	hands := make([]HandLandmarks, 0, len(response.Hands))
	for _, h := range response.Hands {
		if h.Score < d.config.MinConfidence {
			continue
		}
		hands = append(hands, h.toHandLandmarks())
		if len(hands) == d.config.MaxHands {
			break
		}
	}

	d.resetIdleTimer()
	return hands, nil
}

// Close shuts down the subprocess.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shutdown()
}

func (d *MediaPipeDetector) ensureStarted() error {
	if d.started {
		return nil
	}

	scriptPath := findServiceScript()
	if scriptPath == "" {
		return ErrServiceUnavailable
	}

	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	d.cmd = exec.Command(pythonPath, scriptPath,
		"--max-hands", strconv.Itoa(d.config.MaxHands),
		"--min-confidence", strconv.FormatFloat(d.config.MinConfidence, 'f', 2, 64),
		"--min-tracking", strconv.FormatFloat(d.config.MinTrackingConf, 'f', 2, 64),
	)

	stdin, err := d.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	d.cmd.Stderr = os.Stderr

	if err := d.cmd.Start(); err != nil {
		return fmt.Errorf("start landmark service: %w", err)
	}

	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	d.started = true
	return nil
}

func (d *MediaPipeDetector) shutdown() error {
	if !d.started {
		return nil
	}

	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}
	if d.stdin != nil {
		d.stdin.Close()
	}

	err := d.cmd.Wait()
	d.started = false
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil
	return err
}

func (d *MediaPipeDetector) resetIdleTimer() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	d.idleTimer = time.AfterFunc(serviceIdleShutdown, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.shutdown()
	})
}

// findServiceScript locates hand_landmarks.py next to the binary, in the
// working tree, or under ~/.mudra.
func findServiceScript() string {
	var execDir string
	if execPath, err := os.Executable(); err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/hand_landmarks.py",
		"../scripts/hand_landmarks.py",
		filepath.Join(execDir, "scripts/hand_landmarks.py"),
		filepath.Join(os.Getenv("HOME"), ".mudra/scripts/hand_landmarks.py"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

// findVenvPython looks for a virtualenv interpreter so the service picks up
// the mediapipe install.
func findVenvPython() string {
	var execDir string
	if execPath, err := os.Executable(); err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".mudra/venv/bin/python"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

// wireHand is the JSON shape produced by the landmark service.
type wireHand struct {
	Points     []Point3D `json:"points"`
	Handedness string    `json:"handedness"`
	Score      float64   `json:"score"`
}

func (h wireHand) toHandLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: h.Handedness,
		Score:      h.Score,
	}
	for i := 0; i < NumLandmarks && i < len(h.Points); i++ {
		lm.Points[i] = h.Points[i]
	}
	return lm
}
