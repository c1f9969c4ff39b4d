package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Synthesizer turns text into WAV audio. Implementations wrap an external
// voice engine; the mock fabricates silence.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// PiperConfig holds settings for the local piper voice engine.
type PiperConfig struct {
	// BinaryPath is the piper executable. Empty means search PATH and
	// the usual install locations.
	BinaryPath string
	// ModelPath is the ONNX voice model.
	ModelPath string
}

// DefaultPiperConfig returns settings for the bundled voice.
func DefaultPiperConfig() PiperConfig {
	return PiperConfig{
		ModelPath: "models/voice.onnx",
	}
}

// PiperSynthesizer shells out to the piper binary, feeding text on stdin
// and reading a WAV stream from stdout.
type PiperSynthesizer struct {
	binary string
	model  string
}

// NewPiperSynthesizer locates the piper binary and verifies the voice
// model exists.
func NewPiperSynthesizer(config PiperConfig) (*PiperSynthesizer, error) {
	binary := config.BinaryPath
	if binary == "" {
		found, err := findPiperBinary()
		if err != nil {
			return nil, err
		}
		binary = found
	}

	if _, err := os.Stat(config.ModelPath); err != nil {
		return nil, fmt.Errorf("%w: voice model %s: %v", ErrSynthesis, config.ModelPath, err)
	}

	log.Debug("synthesizer ready", "binary", binary, "model", config.ModelPath)
	return &PiperSynthesizer{binary: binary, model: config.ModelPath}, nil
}

func findPiperBinary() (string, error) {
	if path, err := exec.LookPath("piper"); err == nil {
		return path, nil
	}

	candidates := []string{
		"/usr/local/bin/piper",
		"/usr/bin/piper",
		filepath.Join(os.Getenv("HOME"), ".local/bin/piper"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: piper binary not found", ErrSynthesis)
}

// Synthesize runs one piper invocation for the given text.
func (s *PiperSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	cmd := exec.CommandContext(ctx, s.binary,
		"--model", s.model,
		"--output_file", "-",
	)
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrSynthesis, msg)
	}

	return stdout.Bytes(), nil
}

// MockSynthesizer is a test Synthesizer that fabricates short silent WAV
// clips and records the texts it was asked to voice.
type MockSynthesizer struct {
	mu    sync.Mutex
	texts []string
	err   error
	delay func() // optional hook invoked inside Synthesize
}

// NewMockSynthesizer creates a synthesizer producing silence.
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

// SetError makes Synthesize fail.
func (m *MockSynthesizer) SetError(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// SetDelay installs a hook that runs inside each Synthesize call, letting
// tests hold synthesis open.
func (m *MockSynthesizer) SetDelay(fn func()) {
	m.mu.Lock()
	m.delay = fn
	m.mu.Unlock()
}

// Texts returns the texts synthesized so far.
func (m *MockSynthesizer) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

// Synthesize returns a silent WAV clip sized to the text.
func (m *MockSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	m.mu.Lock()
	m.texts = append(m.texts, text)
	err := m.err
	delay := m.delay
	m.mu.Unlock()

	if delay != nil {
		delay()
	}
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Roughly 50ms of silence per character.
	samples := len(text) * SampleRate / 20
	if samples == 0 {
		samples = SampleRate / 20
	}
	return silentWAV(samples), nil
}

// silentWAV builds a minimal mono 16-bit WAV file holding the given
// number of zero samples.
func silentWAV(samples int) []byte {
	dataLen := samples * 2
	buf := make([]byte, 44+dataLen)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataLen))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], ChannelCount)
	binary.LittleEndian.PutUint32(buf[24:28], SampleRate)
	binary.LittleEndian.PutUint32(buf[28:32], SampleRate*ChannelCount*2)
	binary.LittleEndian.PutUint16(buf[32:34], ChannelCount*2)
	binary.LittleEndian.PutUint16(buf[34:36], 16)

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataLen))

	return buf
}
