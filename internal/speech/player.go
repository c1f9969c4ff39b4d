package speech

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
)

// Player plays WAV audio. The production implementation drives the system
// audio device; the mock records calls.
type Player interface {
	// Play blocks until the clip finishes or Stop interrupts it.
	Play(wav []byte) error

	// Stop interrupts the current clip, if any. Safe to call when idle.
	Stop()

	// Close releases the audio device.
	Close() error
}

// OtoPlayer plays WAV data through the system audio device.
type OtoPlayer struct {
	ctx    *oto.Context
	mu     sync.Mutex
	active *oto.Player // currently playing, nil when idle
}

// NewOtoPlayer initializes the audio context. Fails if no audio device is
// available.
func NewOtoPlayer() (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlayback, err)
	}
	<-readyChan

	log.Debug("audio device ready", "rate", SampleRate, "channels", ChannelCount)
	return &OtoPlayer{ctx: ctx}, nil
}

// Play plays one WAV clip synchronously.
func (p *OtoPlayer) Play(wav []byte) error {
	pcm, err := extractPCM(wav)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPlayback, err)
	}

	player := p.ctx.NewPlayer(bytes.NewReader(pcm))

	p.mu.Lock()
	p.active = player
	p.mu.Unlock()

	player.Play()

	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	p.mu.Lock()
	p.active = nil
	p.mu.Unlock()

	return player.Close()
}

// Stop interrupts the current clip.
func (p *OtoPlayer) Stop() {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()

	if active != nil {
		active.Pause()
	}
}

// Close is a no-op: the oto context has no release call, the device is
// held for process lifetime.
func (p *OtoPlayer) Close() error {
	return nil
}

// extractPCM strips the RIFF envelope and returns the raw PCM samples.
func extractPCM(wav []byte) ([]byte, error) {
	if len(wav) < 44 {
		return nil, fmt.Errorf("wav data too short (%d bytes)", len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a WAV stream")
	}

	// Walk chunks to find the data chunk.
	pos := 12
	for pos < len(wav)-8 {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))

		if chunkID == "data" {
			start := pos + 8
			end := start + chunkSize
			if end > len(wav) {
				end = len(wav)
			}
			return wav[start:end], nil
		}

		pos += 8 + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}

	return nil, fmt.Errorf("wav data chunk not found")
}

// MockPlayer is a test Player. Each Play call finishes immediately unless
// a hold is installed, and overlapping Play calls are counted so tests
// can assert serialization.
type MockPlayer struct {
	mu       sync.Mutex
	playing  bool
	plays    int
	overlaps int
	stopped  int
	hold     chan struct{} // when set, Play blocks until Stop or release
}

// NewMockPlayer creates an idle mock player.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

// Hold makes subsequent Play calls block until Stop is called.
func (m *MockPlayer) Hold() {
	m.mu.Lock()
	m.hold = make(chan struct{})
	m.mu.Unlock()
}

// Play records the call, blocking if a hold is installed.
func (m *MockPlayer) Play(wav []byte) error {
	m.mu.Lock()
	if m.playing {
		m.overlaps++
	}
	m.playing = true
	m.plays++
	hold := m.hold
	m.mu.Unlock()

	if hold != nil {
		<-hold
	}

	m.mu.Lock()
	m.playing = false
	m.mu.Unlock()
	return nil
}

// Stop releases a held Play call.
func (m *MockPlayer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped++
	if m.hold != nil {
		close(m.hold)
		m.hold = nil
	}
}

// Close releases any held Play call.
func (m *MockPlayer) Close() error {
	m.Stop()
	return nil
}

// Plays returns how many Play calls completed or started.
func (m *MockPlayer) Plays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plays
}

// Overlaps returns how many Play calls began while another was active.
func (m *MockPlayer) Overlaps() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlaps
}

// Stops returns how many times Stop was called.
func (m *MockPlayer) Stops() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}
