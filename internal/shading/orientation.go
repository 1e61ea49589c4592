package shading

import (
	"math"

	"github.com/zonwering-data/fshade.report/internal/geom"
)

// Orientation is the compass sector a window faces. The NEN 5060 tables are
// keyed by these eight sectors.
type Orientation string

const (
	North     Orientation = "North"
	Northeast Orientation = "Northeast"
	East      Orientation = "East"
	Southeast Orientation = "Southeast"
	South     Orientation = "South"
	Southwest Orientation = "Southwest"
	West      Orientation = "West"
	Northwest Orientation = "Northwest"

	// OrientationUnknown is reported on error results only; it never comes
	// out of OrientationFromNormal.
	OrientationUnknown Orientation = "Unknown"
)

// Orientations lists the eight sectors in clockwise order from North.
var Orientations = []Orientation{
	North, Northeast, East, Southeast, South, Southwest, West, Northwest,
}

// OrientationFromNormal maps the horizontal component of a window normal to
// a compass sector. The convention is atan2(x, y): +Y is North (0 deg) and
// angles increase clockwise. Sectors are 45 deg wide, centred on the eight
// compass points, lower bound inclusive.
func OrientationFromNormal(normal geom.Vec) Orientation {
	deg := math.Atan2(normal.X, normal.Y) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}

	switch {
	case deg >= 337.5 || deg < 22.5:
		return North
	case deg < 67.5:
		return Northeast
	case deg < 112.5:
		return East
	case deg < 157.5:
		return Southeast
	case deg < 202.5:
		return South
	case deg < 247.5:
		return Southwest
	case deg < 292.5:
		return West
	default:
		return Northwest
	}
}
