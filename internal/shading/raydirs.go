package shading

import (
	"fmt"
	"math"
	"sync"

	"github.com/zonwering-data/fshade.report/internal/geom"
)

// Hemispherical fan geometry: 16 elevation rings by 9 azimuth offsets gives
// 144 rays per sample point.
const (
	elevationStep   = 5.0
	elevationMin    = 5.0
	elevationMax    = 80.0
	azimuthSpread   = 60.0
	azimuthSteps    = 9
	shadingElevMax  = 85.0 // shading scan runs one ring higher than the fan
	openSkyElev     = 90.0 // reported when nothing blocks the shading scan
)

// RayDirection is one unit direction in the sky fan, tagged with the
// elevation and azimuth it was built from.
type RayDirection struct {
	Dir       geom.Vec
	Elevation float64 // degrees above horizontal
	Azimuth   float64 // degrees offset from the window normal
}

// fanElevations returns the context fan elevations {5,10,...,80}.
func fanElevations() []float64 {
	var out []float64
	for e := elevationMin; e <= elevationMax; e += elevationStep {
		out = append(out, e)
	}
	return out
}

// shadingElevations returns the shading scan elevations {5,10,...,85}.
func shadingElevations() []float64 {
	var out []float64
	for e := elevationMin; e <= shadingElevMax; e += elevationStep {
		out = append(out, e)
	}
	return out
}

// elevatedDirection tilts a horizontal unit direction up by the elevation
// angle. At 0 deg the result is the horizontal direction, at 90 deg it is
// straight up.
func elevatedDirection(horizontal geom.Vec, elevationDeg float64) geom.Vec {
	rad := elevationDeg * math.Pi / 180
	d := horizontal.Scale(math.Cos(rad))
	d.Z += math.Sin(rad)
	return geom.Unit(d)
}

// rayDirections builds the full fan for one window normal: each azimuth
// offset rotates the forward direction in the horizontal plane, then each
// elevation tilts it toward the zenith.
func rayDirections(normal geom.Vec) []RayDirection {
	forward := geom.Unit(normal)
	right := rightVector(forward, geom.Vec{Y: 1})

	azimuths := make([]float64, 0, azimuthSteps)
	for i := 0; i < azimuthSteps; i++ {
		azimuths = append(azimuths, -azimuthSpread+2*azimuthSpread*float64(i)/float64(azimuthSteps-1))
	}

	elevations := fanElevations()
	dirs := make([]RayDirection, 0, len(elevations)*len(azimuths))
	for _, elev := range elevations {
		for _, az := range azimuths {
			azRad := az * math.Pi / 180
			horizontal := geom.Unit(forward.Scale(math.Cos(azRad)).Add(right.Scale(math.Sin(azRad))))
			dirs = append(dirs, RayDirection{
				Dir:       elevatedDirection(horizontal, elev),
				Elevation: elev,
				Azimuth:   az,
			})
		}
	}
	return dirs
}

// directionCache memoises ray fans per facing direction. Windows on one
// facade share a normal, so a batch typically builds a handful of fans.
// The key quantizes the horizontal normal components to three decimals;
// the Z component does not affect the fan's azimuth plane enough to key on.
type directionCache struct {
	mu   sync.Mutex
	fans map[string][]RayDirection
}

func newDirectionCache() *directionCache {
	return &directionCache{fans: make(map[string][]RayDirection)}
}

func (c *directionCache) get(normal geom.Vec) []RayDirection {
	key := fmt.Sprintf("%.3f,%.3f", normal.X, normal.Y)

	c.mu.Lock()
	defer c.mu.Unlock()
	if fan, ok := c.fans[key]; ok {
		return fan
	}
	fan := rayDirections(normal)
	c.fans[key] = fan
	return fan
}
