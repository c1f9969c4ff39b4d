package classify

import (
	"github.com/ayusman/mudra/internal/detector"
)

// RuleConfig holds the distance thresholds used to split visually
// confusable letter clusters. The values are empirically tuned constants
// in canvas-pixel units, carried over from the model's training setup; do
// not re-derive them.
type RuleConfig struct {
	// OpenCurveDist separates open-curve letters from closed ones:
	// C from O (middle tip to thumb tip) and Y from J (index tip to
	// thumb tip).
	OpenCurveDist float64

	// SpreadDist separates spread fingers from joined ones: G from H
	// (index tip to middle tip).
	SpreadDist float64
}

// DefaultRuleConfig returns the tuned thresholds for the 400x400 canvas.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		OpenCurveDist: 42,
		SpreadDist:    72,
	}
}

// Refiner applies the static disambiguation rules on top of raw model
// predictions. The model confuses letters whose skeletons look alike; the
// rules split those clusters with landmark distance ratios, and recognize
// the control gestures (space, backspace) that share the letter alphabet's
// hand space.
type Refiner struct {
	config RuleConfig
}

// NewRefiner creates a refiner with the given thresholds.
func NewRefiner(config RuleConfig) *Refiner {
	return &Refiner{config: config}
}

// Refine maps a raw prediction plus the canvas-space landmarks to the
// final symbol. Control gestures take precedence over letters; otherwise
// the predicted letter is corrected within its confusable cluster.
func (r *Refiner) Refine(pred Prediction, hand detector.CanvasHand) rune {
	pts := hand.Points

	if isSpaceGesture(pts) {
		return SymbolSpace
	}
	if isBackspaceGesture(pts) {
		return SymbolBackspace
	}

	switch pred.Symbol {
	case 'S', 'A', 'E', 'M', 'N', 'T':
		return r.refineFistCluster(pred, pts)
	case 'C', 'O':
		if pts[detector.MiddleTip].Dist(pts[detector.ThumbTip]) > r.config.OpenCurveDist {
			return 'C'
		}
		return 'O'
	case 'G', 'H':
		if pts[detector.IndexTip].Dist(pts[detector.MiddleTip]) > r.config.SpreadDist {
			return 'G'
		}
		return 'H'
	case 'Y', 'J':
		if pts[detector.IndexTip].Dist(pts[detector.ThumbTip]) > r.config.OpenCurveDist {
			return 'Y'
		}
		return 'J'
	case 'B', 'D', 'F':
		return refineFlatCluster(pts)
	default:
		return pred.Symbol
	}
}

// refineFistCluster splits the closed-fist letters. Thumb position
// identifies A (beside the fist) and E (below the index tip); the deep
// fist letters S, M, N and T look identical from landmarks alone, so for
// those the model's own ranking decides: its best guess, or its runner-up
// when the thumb rules just rejected the best one.
func (r *Refiner) refineFistCluster(pred Prediction, pts [detector.NumLandmarks]detector.Point2D) rune {
	if pts[detector.ThumbTip].X < pts[detector.IndexPIP].X {
		return 'A'
	}
	if pts[detector.ThumbTip].Y > pts[detector.IndexTip].Y {
		return 'E'
	}

	if isDeepFistLetter(pred.Symbol) {
		return pred.Symbol
	}
	if runner := pred.Runner(); isDeepFistLetter(runner) {
		return runner
	}
	return 'S'
}

func isDeepFistLetter(symbol rune) bool {
	return symbol == 'S' || symbol == 'M' || symbol == 'N' || symbol == 'T'
}

// refineFlatCluster splits the extended-finger letters by which fingers
// are raised: index and middle raised is B, index only is D, otherwise F.
func refineFlatCluster(pts [detector.NumLandmarks]detector.Point2D) rune {
	indexUp := fingerExtended(pts, detector.IndexPIP, detector.IndexTip)
	middleUp := fingerExtended(pts, detector.MiddlePIP, detector.MiddleTip)

	switch {
	case indexUp && middleUp:
		return 'B'
	case indexUp:
		return 'D'
	default:
		return 'F'
	}
}

// fingerExtended reports whether a finger points upward on the canvas,
// i.e. its tip sits above its PIP joint (canvas Y grows downward).
func fingerExtended(pts [detector.NumLandmarks]detector.Point2D, pip, tip int) bool {
	return pts[tip].Y < pts[pip].Y
}

// isSpaceGesture recognizes the word-separator sign: index and pinky
// raised with middle and ring folded.
func isSpaceGesture(pts [detector.NumLandmarks]detector.Point2D) bool {
	return fingerExtended(pts, detector.IndexPIP, detector.IndexTip) &&
		!fingerExtended(pts, detector.MiddlePIP, detector.MiddleTip) &&
		!fingerExtended(pts, detector.RingPIP, detector.RingTip) &&
		fingerExtended(pts, detector.PinkyPIP, detector.PinkyTip)
}

// isBackspaceGesture recognizes the erase sign: all four fingers folded
// with the thumb tucked across the palm past the middle knuckle. The
// middle knuckle, not the index one, is the boundary: a thumb resting
// beside the fist (the A pose) sits just past the index line.
func isBackspaceGesture(pts [detector.NumLandmarks]detector.Point2D) bool {
	return pts[detector.ThumbTip].X < pts[detector.MiddleMCP].X &&
		pts[detector.ThumbTip].Y < pts[detector.IndexTip].Y &&
		!fingerExtended(pts, detector.IndexPIP, detector.IndexTip) &&
		!fingerExtended(pts, detector.MiddlePIP, detector.MiddleTip) &&
		!fingerExtended(pts, detector.RingPIP, detector.RingTip) &&
		!fingerExtended(pts, detector.PinkyPIP, detector.PinkyTip)
}
