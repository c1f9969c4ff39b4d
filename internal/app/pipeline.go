package app

import (
	"time"

	"github.com/charmbracelet/log"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/detector"
)

// runPipeline is the recognition loop. Each tick reads one frame and runs
// it through motion gating, hand detection, canvas projection, the
// classifier, the rule refiner, and the debouncer; a committed symbol
// mutates the sentence buffer. Failures skip the cycle, never the
// process.
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(a.idleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Debug("frame read failed", "err", err)
				continue
			}

			// Motion gating: run the detector and classifier only while
			// something moves in front of the camera.
			motionDetected, _ := a.motion.Detect(frame)
			if motionDetected {
				lastMotionTime = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(a.activeFPS)
					frameInterval = time.Second / time.Duration(a.activeFPS)
					ticker.Reset(frameInterval)
					a.setActiveMode(true)
					log.Debug("switched to active mode")
				}
			} else if activeMode && time.Since(lastMotionTime) > idleTimeout() {
				activeMode = false
				a.camera.SetFPS(a.idleFPS)
				frameInterval = time.Second / time.Duration(a.idleFPS)
				ticker.Reset(frameInterval)
				a.setActiveMode(false)
				a.debounce.Reset()
				log.Debug("switched to idle mode")
			}

			a.publishFrame(frame)

			if !activeMode || !a.IsEnabled() {
				frame.Close()
				continue
			}

			a.processFrame(frame)
			frame.Close()
		}
	}
}

// processFrame runs recognition on one frame and feeds the outcome into
// the debouncer.
func (a *App) processFrame(frame *gocv.Mat) {
	hands, err := a.detector.Detect(frame)
	if err != nil {
		log.Debug("hand detection failed", "err", err)
		a.debounce.Reset()
		return
	}
	if len(hands) == 0 {
		a.debounce.Reset()
		return
	}

	hand := detector.ProjectToCanvas(&hands[0], frame.Cols(), frame.Rows())
	canvas := hand.Render()
	defer canvas.Close()

	pred, err := a.classify.Classify(&canvas)
	if err != nil {
		log.Debug("classification failed", "err", err)
		a.debounce.Reset()
		return
	}
	if pred.Confidence < a.minConfidence {
		a.debounce.Reset()
		return
	}

	symbol := a.refiner.Refine(pred, hand)
	if symbol == classify.SymbolNone {
		a.debounce.Reset()
		return
	}

	committed, ok := a.debounce.Observe(symbol)
	if !ok {
		return
	}
	a.commit(committed, pred.Confidence)
}

// commit applies one debounced symbol to the sentence buffer.
func (a *App) commit(symbol rune, confidence float64) {
	switch symbol {
	case classify.SymbolSpace:
		a.buffer.AppendSpace()
	case classify.SymbolBackspace:
		a.buffer.Backspace()
	default:
		a.buffer.Append(symbol)
	}

	a.setLastCommit(symbol, confidence)
	a.refreshSuggestions()
	log.Info("symbol committed", "symbol", symbolLabel(symbol), "confidence", confidence)
}

// publishFrame stores the frame as JPEG for the preview stream.
func (a *App) publishFrame(frame *gocv.Mat) {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return
	}
	defer buf.Close()
	a.setFrameJPEG(append([]byte(nil), buf.GetBytes()...))
}
