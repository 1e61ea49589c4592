// Package shading classifies building windows by their dominant solar
// shading factor per NEN 5060 and resolves the matching reduction factor
// (Fsh) for a calendar month.
//
// The pipeline per window: derive mesh properties (centre, area-weighted
// normal, bounds), map the normal to a compass orientation, place five
// weighted sample points on the face, cast a 144-ray hemispherical fan
// against the prefiltered context set, scan a vertical ray ladder against
// the attached shading device, compare the two sky-occlusion results, and
// look the classification up in the static regulatory tables.
//
// Per-window classification is pure and deterministic. Batches run windows
// on a worker pool; the context set and the ray-direction cache are the
// only shared state and both are read-only during dispatch.
package shading
