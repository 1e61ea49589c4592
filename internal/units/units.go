// Package units provides shared constants and validation for angles and
// calendar months
package units

import (
	"fmt"
	"math"
)

// Month name constants, indexed 1-12.
var monthNames = [13]string{"",
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ValidMonth checks that a month number falls in 1-12.
func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// MonthName returns the English month name, or an error for an out-of-range
// number.
func MonthName(month int) (string, error) {
	if !ValidMonth(month) {
		return "", fmt.Errorf("month %d out of range 1-12", month)
	}
	return monthNames[month], nil
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeDeg wraps an angle into [0, 360).
func NormalizeDeg(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}
