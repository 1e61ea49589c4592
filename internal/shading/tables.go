package shading

// CalcMode selects which NEN 5060 table set applies.
type CalcMode string

const (
	// ModeHeating resolves against tables 17.4 and 17.7 (the heating
	// season factors).
	ModeHeating CalcMode = "heating"
	// ModeCooling and ModeSolar are accepted for completeness. The
	// standard's cooling and solar tables (17.5/17.6/17.8/17.9) were never
	// authored in the source data, so both resolve to the unshaded default
	// of 1.0 for every lookup.
	ModeCooling CalcMode = "cooling"
	ModeSolar   CalcMode = "solar"
)

// ParseCalcMode maps a mode string to a CalcMode, defaulting to heating.
func ParseCalcMode(s string) CalcMode {
	switch CalcMode(s) {
	case ModeCooling:
		return ModeCooling
	case ModeSolar:
		return ModeSolar
	default:
		return ModeHeating
	}
}

// HoCategory is the authored bucket for the obstruction ratio.
type HoCategory string

const (
	HoBelowHalf HoCategory = "<0.5"
	HoHalfToOne HoCategory = "0.5-1.0"
	HoOnePlus   HoCategory = ">=1.0"
)

// CategoriseHo buckets an obstruction ratio. The boundaries are half-open
// on the low side: exactly 0.5 falls in "0.5-1.0" and exactly 1.0 in
// ">=1.0".
func CategoriseHo(ho float64) HoCategory {
	switch {
	case ho < 0.5:
		return HoBelowHalf
	case ho < 1.0:
		return HoHalfToOne
	default:
		return HoOnePlus
	}
}

// defaultFsh is resolved whenever a month/orientation/category has no
// authored entry: missing data means "treat as unshaded".
const defaultFsh = 1.0

// bandedFsh holds the three category factors for one month/orientation in
// authored order: <0.5, 0.5-1.0, >=1.0.
type bandedFsh [3]float64

func (b bandedFsh) at(cat HoCategory) float64 {
	switch cat {
	case HoBelowHalf:
		return b[0]
	case HoHalfToOne:
		return b[1]
	default:
		return b[2]
	}
}

// LookupFsh resolves the reduction factor for a classified window. Minimal
// obstruction uses the scalar table; overhang and context obstruction use
// the banded table. Values come back verbatim from the authored data.
//
// The standard's tables carry no Southwest row; per accepted practice the
// Southwest factor is the mean of the South and West lookups.
func LookupFsh(mode CalcMode, class Classification, orientation Orientation, month int, hoRatio float64) float64 {
	if month < 1 || month > 12 {
		return defaultFsh
	}
	if mode != ModeHeating {
		// Cooling/solar tables absent from the authored data.
		return defaultFsh
	}

	if orientation == Southwest {
		south := LookupFsh(mode, class, South, month, hoRatio)
		west := LookupFsh(mode, class, West, month, hoRatio)
		return (south + west) / 2
	}

	if class == MinimalObstruction {
		row, ok := minimalFsh[month]
		if !ok {
			return defaultFsh
		}
		if v, ok := row[orientation]; ok {
			return v
		}
		return defaultFsh
	}

	row, ok := obstructedFsh[month]
	if !ok {
		return defaultFsh
	}
	band, ok := row[orientation]
	if !ok {
		return defaultFsh
	}
	return band.at(CategoriseHo(hoRatio))
}
