package fingerspell

import (
	"sync"
	"time"
	"unicode"
)

// DefaultFrameInterval is how long each letter stays on screen.
const DefaultFrameInterval = 800 * time.Millisecond

// State is the playback lifecycle.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Frame is one step of a playback: a letter, its hand-shape image, and
// its position in the sequence.
type Frame struct {
	Letter rune
	Image  []byte
	Index  int
	Total  int
}

// Status is a point-in-time snapshot of a playback.
type Status struct {
	State    State
	Position int
	Total    int
	Letter   rune
}

// BuildSequence maps text to its playback frames. Letters are uppercased
// and everything without a hand shape (digits, punctuation, spaces) is
// skipped.
func BuildSequence(text string, lib *Library) []Frame {
	var frames []Frame
	for _, r := range text {
		letter := unicode.ToUpper(r)
		img, ok := lib.Image(letter)
		if !ok {
			continue
		}
		frames = append(frames, Frame{Letter: letter, Image: img})
	}
	for i := range frames {
		frames[i].Index = i
		frames[i].Total = len(frames)
	}
	return frames
}

// Player runs one playback at a time, emitting frames on its channel at a
// fixed interval. Pause freezes the current letter, Resume continues, and
// Restart replays the same text from the beginning. Starting a new text
// replaces whatever was running.
type Player struct {
	lib      *Library
	interval time.Duration
	frameCh  chan Frame

	mu      sync.Mutex
	frames  []Frame
	pos     int
	state   State
	current rune
	gen     int
	stopCh  chan struct{} // closes when the running loop must exit
}

// NewPlayer creates an idle player over the given letter library.
func NewPlayer(lib *Library, interval time.Duration) *Player {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Player{
		lib:      lib,
		interval: interval,
		frameCh:  make(chan Frame, 1),
	}
}

// C returns the channel frames are delivered on.
func (p *Player) C() <-chan Frame {
	return p.frameCh
}

// Play starts playback of the text, replacing any playback in flight.
// Text with no playable letters leaves the player idle.
func (p *Player) Play(text string) {
	frames := BuildSequence(text, p.lib)
	p.start(frames)
}

// Restart replays the current sequence from the beginning.
func (p *Player) Restart() {
	p.mu.Lock()
	frames := p.frames
	p.mu.Unlock()
	p.start(frames)
}

func (p *Player) start(frames []Frame) {
	p.mu.Lock()
	if p.stopCh != nil {
		close(p.stopCh)
	}
	p.gen++
	p.frames = frames
	p.pos = 0
	p.current = 0

	if len(frames) == 0 {
		p.state = StateIdle
		p.stopCh = nil
		p.mu.Unlock()
		return
	}

	p.state = StatePlaying
	stopCh := make(chan struct{})
	p.stopCh = stopCh
	gen := p.gen
	p.mu.Unlock()

	go p.loop(frames, gen, stopCh)
}

// Pause freezes playback on the current letter.
func (p *Player) Pause() {
	p.mu.Lock()
	if p.state == StatePlaying {
		p.state = StatePaused
	}
	p.mu.Unlock()
}

// Resume continues a paused playback.
func (p *Player) Resume() {
	p.mu.Lock()
	if p.state == StatePaused {
		p.state = StatePlaying
	}
	p.mu.Unlock()
}

// Stop abandons the current playback.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.stopCh != nil {
		close(p.stopCh)
		p.stopCh = nil
	}
	p.gen++
	p.state = StateIdle
	p.pos = 0
	p.current = 0
	p.mu.Unlock()
}

// Status reports the playback snapshot.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{
		State:    p.state,
		Position: p.pos,
		Total:    len(p.frames),
		Letter:   p.current,
	}
}

// loop emits one frame per interval until the sequence ends or the
// playback is replaced. The first frame goes out immediately.
func (p *Player) loop(frames []Frame, gen int, stopCh chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.mu.Lock()
		if p.gen != gen {
			p.mu.Unlock()
			return
		}
		if p.state == StatePaused {
			p.mu.Unlock()
			select {
			case <-ticker.C:
				continue
			case <-stopCh:
				return
			}
		}
		if p.pos >= len(frames) {
			p.state = StateDone
			p.stopCh = nil
			p.mu.Unlock()
			return
		}
		frame := frames[p.pos]
		p.pos++
		p.current = frame.Letter
		p.mu.Unlock()

		select {
		case p.frameCh <- frame:
		case <-stopCh:
			return
		}

		select {
		case <-ticker.C:
		case <-stopCh:
			return
		}
	}
}
