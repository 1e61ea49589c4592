package shading

import "math"

// Classification is the dominant-shading class assigned to a window.
type Classification string

const (
	// MinimalObstruction: neither context nor device significantly blocks
	// the sky.
	MinimalObstruction Classification = "MinimalObstruction"
	// Overhang: an attached shading device dominates.
	Overhang Classification = "Overhang"
	// ContextObstruction: surrounding geometry dominates.
	ContextObstruction Classification = "ContextObstruction"
	// ClassError: the window could not be analysed.
	ClassError Classification = "Error"
)

// DominantFactor tags which side of the comparison won.
type DominantFactor string

const (
	DominantNeither DominantFactor = "Neither"
	DominantShading DominantFactor = "Shading"
	DominantContext DominantFactor = "Context"
	DominantError   DominantFactor = "Error"
)

// significanceThresholdDeg: an obstruction matters once it blocks more
// than this many degrees of sky elevation.
const significanceThresholdDeg = 20.0

// contextHoRatio approximates a projection-depth ratio from the context
// elevation angle, clamped to [0,2]. tan explodes near 90 deg, hence the
// cutoff at 89.
func contextHoRatio(angleDeg float64) float64 {
	if angleDeg <= 0 {
		return 0
	}
	if angleDeg >= 89 {
		return 2.0
	}
	ho := math.Tan(angleDeg * math.Pi / 180)
	if ho > 2.0 {
		return 2.0
	}
	return ho
}

// decision is the outcome of the classification comparison.
type decision struct {
	Class    Classification
	HoRatio  float64
	Dominant DominantFactor
}

// classify compares context against shading sky occlusion. Context blocks
// the sky from the horizon up to contextElev; a device blocks from
// shadingElev up to the zenith, so its blocked share is 90-shadingElev.
// When both are significant the larger blocked share wins, ties going to
// the shading device. Stateless; re-evaluated per window.
func classify(contextElev, shadingElev float64, hasShading bool, shadingHo float64, threshold float64) decision {
	contextBlocked := contextElev
	shadingBlocked := 90 - shadingElev

	contextSig := contextBlocked > threshold
	shadingSig := hasShading && shadingBlocked > threshold

	switch {
	case !contextSig && !shadingSig:
		return decision{MinimalObstruction, 0, DominantNeither}
	case shadingSig && (!contextSig || shadingBlocked >= contextBlocked):
		return decision{Overhang, shadingHo, DominantShading}
	default:
		return decision{ContextObstruction, contextHoRatio(contextElev), DominantContext}
	}
}
