// Package report renders a classification batch as the fixed-width text
// report used for desk review of a facade analysis.
package report

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/zonwering-data/fshade.report/internal/shading"
	"github.com/zonwering-data/fshade.report/internal/units"
)

const lineWidth = 80

// Input describes the request the report covers.
type Input struct {
	Windows   int
	Shading   int
	Context   int
	Month     int
	Mode      shading.CalcMode
	Threshold float64
}

var classAbbrev = map[shading.Classification]string{
	shading.MinimalObstruction: "Min",
	shading.Overhang:           "Ove",
	shading.ContextObstruction: "Ctx",
	shading.ClassError:         "Err",
}

// Header renders the report banner, input summary and column headings.
func Header(in Input) []string {
	monthName, err := units.MonthName(in.Month)
	if err != nil {
		monthName = "Unknown"
	}

	rule := strings.Repeat("=", lineWidth)
	dash := strings.Repeat("-", lineWidth)

	lines := []string{
		rule,
		"NEN 5060 WINDOW SHADING CLASSIFICATION",
		rule,
		"",
		"INPUT SUMMARY:",
		fmt.Sprintf("  Windows: %d", in.Windows),
		fmt.Sprintf("  Shading devices: %d", in.Shading),
		fmt.Sprintf("  Context buildings: %d", in.Context),
		fmt.Sprintf("  Analysis month: %d (%s)", in.Month, monthName),
		fmt.Sprintf("  Calculation mode: %s", in.Mode),
		"",
		"METHODOLOGY:",
		"  - Context obstruction: blocks sky from 0deg up to context_angle",
		"  - Shading obstruction: blocks sky from shading_angle up to 90deg",
		"  - Comparison: context_blocked vs shading_blocked (= 90 - shading_angle)",
		fmt.Sprintf("  - Threshold for 'significant': %.1fdeg", in.Threshold),
		"",
		rule,
		"",
		"PROCESSING WINDOWS...",
		dash,
		fmt.Sprintf("%5s %7s %7s %8s %8s %14s %8s %7s",
			"Win", "Ctx", "Shd", "Ctx_blk", "Shd_blk", "Dominant", "Class", "Fsh"),
		dash,
	}
	return lines
}

// Row renders one result line.
func Row(r shading.Result) string {
	abbrev, ok := classAbbrev[r.Classification]
	if !ok {
		abbrev = "???"
	}
	dominant := string(r.Dominant)
	if len(dominant) > 14 {
		dominant = dominant[:14]
	}
	return fmt.Sprintf("%5d %7.1f %7.1f %8.1f %8.1f %14s %8s %7.3f",
		r.WindowIndex, r.ContextAngle, r.ShadingAngle,
		r.ContextBlocked, r.ShadingBlocked, dominant, abbrev, r.Fsh)
}

// Summary renders the distribution and angle/factor statistics block.
func Summary(results []shading.Result) []string {
	counts := map[shading.Classification]int{}
	contextAngles := make([]float64, 0, len(results))
	shadingAngles := make([]float64, 0, len(results))
	fshFactors := make([]float64, 0, len(results))
	for _, r := range results {
		counts[r.Classification]++
		contextAngles = append(contextAngles, r.ContextAngle)
		shadingAngles = append(shadingAngles, r.ShadingAngle)
		fshFactors = append(fshFactors, r.Fsh)
	}

	total := len(results)
	if total < 1 {
		total = 1
	}
	pct := func(n int) float64 { return 100.0 * float64(n) / float64(total) }

	rule := strings.Repeat("=", lineWidth)
	lines := []string{
		"",
		rule,
		"SUMMARY",
		rule,
		"",
		"CLASSIFICATION DISTRIBUTION:",
		fmt.Sprintf("  Minimal obstruction: %4d windows (%.1f%%)", counts[shading.MinimalObstruction], pct(counts[shading.MinimalObstruction])),
		fmt.Sprintf("  Overhang:            %4d windows (%.1f%%)", counts[shading.Overhang], pct(counts[shading.Overhang])),
		fmt.Sprintf("  Context obstruction: %4d windows (%.1f%%)", counts[shading.ContextObstruction], pct(counts[shading.ContextObstruction])),
	}
	if n := counts[shading.ClassError]; n > 0 {
		lines = append(lines, fmt.Sprintf("  Errors:              %4d windows", n))
	}

	if len(contextAngles) > 0 {
		lines = append(lines,
			"",
			"CONTEXT OBSTRUCTION:",
			fmt.Sprintf("  Raw angles:  min=%.1fdeg  max=%.1fdeg  avg=%.1fdeg",
				floats.Min(contextAngles), floats.Max(contextAngles), stat.Mean(contextAngles, nil)),
		)
	}
	if len(shadingAngles) > 0 {
		lines = append(lines,
			"",
			"SHADING OBSTRUCTION:",
			fmt.Sprintf("  Raw angles:  min=%.1fdeg  max=%.1fdeg  avg=%.1fdeg",
				floats.Min(shadingAngles), floats.Max(shadingAngles), stat.Mean(shadingAngles, nil)),
		)
	}
	if len(fshFactors) > 0 {
		lines = append(lines,
			"",
			"FSH FACTORS:",
			fmt.Sprintf("  Range: %.3f to %.3f", floats.Min(fshFactors), floats.Max(fshFactors)),
			fmt.Sprintf("  Average: %.3f", stat.Mean(fshFactors, nil)),
		)
	}

	lines = append(lines, "", rule)
	return lines
}

// Render produces the complete report text for one batch.
func Render(in Input, results []shading.Result) string {
	lines := Header(in)
	for _, r := range results {
		lines = append(lines, Row(r))
	}
	lines = append(lines, Summary(results)...)
	return strings.Join(lines, "\n") + "\n"
}
