package shading

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/zonwering-data/fshade.report/internal/geom"
)

// Blend between the weighted per-sample average and the single worst
// sample: robust against one heavily shaded corner while still reflecting
// the window's typical exposure.
const (
	averageShare = 0.7
	maximumShare = 0.3
)

// castContextRays casts the full fan from every sample point against the
// merged context mesh and returns the aggregate blocked elevation in
// degrees. Per sample the maximum elevation with a valid hit is kept (0
// when nothing is hit); samples are then combined as
// averageShare*weightedMean + maximumShare*max.
func castContextRays(samples []SamplePoint, fan []RayDirection, context *geom.Mesh, minDist, maxDist float64) float64 {
	if context == nil || len(context.Faces) == 0 || len(samples) == 0 {
		return 0
	}

	maxima := make([]float64, 0, len(samples))
	weights := make([]float64, 0, len(samples))

	for _, sp := range samples {
		sampleMax := 0.0
		for _, rd := range fan {
			// A hit can only raise the maximum, so rings at or below it
			// need no casting.
			if rd.Elevation <= sampleMax {
				continue
			}
			if context.HitsRay(geom.Ray{Origin: sp.Position, Dir: rd.Dir}, minDist, maxDist) {
				sampleMax = rd.Elevation
			}
		}
		maxima = append(maxima, sampleMax)
		weights = append(weights, sp.Weight)
	}

	totalWeight := 0.0
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight <= 0 {
		return 0
	}

	weightedAvg := stat.Mean(maxima, weights)
	absoluteMax := 0.0
	for _, m := range maxima {
		if m > absoluteMax {
			absoluteMax = m
		}
	}
	return averageShare*weightedAvg + maximumShare*absoluteMax
}

// castShadingRays scans single rays from the bottom-centre reference point
// at each elevation straight along the window normal (shading devices sit
// directly above/forward of the window, so no azimuth fan). It returns the
// lowest blocked elevation in degrees (90 when the sky is open) and the
// projection-depth ratio ho = hitDistance*cos(elevation) / windowHeight.
func castShadingRays(windowBounds geom.BoundingBox, normal geom.Vec, shading *geom.Mesh, minDist, maxDist float64) (elevation, hoRatio float64) {
	if shading == nil || len(shading.Faces) == 0 {
		return openSkyElev, 0
	}

	origin := referencePoint(windowBounds)
	forward := geom.Unit(normal)

	lowestElev := openSkyElev
	hitDistance := 0.0

	for _, elev := range shadingElevations() {
		dir := elevatedDirection(forward, elev)
		dist, ok := shading.IntersectRay(geom.Ray{Origin: origin, Dir: dir}, minDist, maxDist)
		if ok && elev < lowestElev {
			lowestElev = elev
			hitDistance = dist
		}
	}

	if lowestElev >= openSkyElev {
		return openSkyElev, 0
	}

	height := windowBounds.HeightZ()
	if height <= 0 {
		return lowestElev, 0
	}
	depth := hitDistance * math.Cos(lowestElev*math.Pi/180)
	return lowestElev, depth / height
}
