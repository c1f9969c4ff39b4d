// Package speech provides the voice I/O sides of the translator: a
// text-to-speech speaker that voices the composed sentence, and a
// speech-to-text listener that captures a spoken sentence for
// fingerspelling playback. Both wrap external engines behind small
// capability interfaces so tests can substitute stubs.
package speech

import "errors"

// Audio format shared by the synthesizer and the playback device.
const (
	// SampleRate matches the voice model's output rate.
	SampleRate = 22050
	// ChannelCount is mono throughout.
	ChannelCount = 1
)

// Sentinel speech errors.
var (
	// ErrSynthesis is returned when the text-to-speech engine fails.
	ErrSynthesis = errors.New("speech: synthesis failed")
	// ErrPlayback is returned when the audio device rejects output.
	ErrPlayback = errors.New("speech: playback failed")
	// ErrListenerBusy is returned when a listening session is already
	// running. Only one capture can hold the microphone.
	ErrListenerBusy = errors.New("speech: listener busy")
	// ErrNoSpeech is returned when a capture window produced no usable
	// transcript.
	ErrNoSpeech = errors.New("speech: no speech recognized")
	// ErrRecognition is returned when the recognizer itself fails.
	ErrRecognition = errors.New("speech: recognition failed")
)

// Result is the single terminal outcome of a listening session: a
// transcript, or an error describing why there is none.
type Result struct {
	Text string
	Err  error
}
