package scoring

import "github.com/lcalzada-xor/prr/internal/core/domain"

// Thresholds maps a continuous value onto a 1..3 level.
type Thresholds struct {
	High   float64
	Medium float64
}

// Level returns 3 at or above High, 2 at or above Medium, else 1.
func (t Thresholds) Level(v float64) domain.Level {
	switch {
	case v >= t.High:
		return domain.LevelHigh
	case v >= t.Medium:
		return domain.LevelMedium
	default:
		return domain.LevelLow
	}
}

// Generation 3 constants.
const (
	maxCIAValue = float64(domain.MaxCIA)

	minEaseMultiplier = 0.1
	maxEaseMultiplier = 1.5

	// Critical-bias escalation is fixed policy and currently off.
	criticalBiasEnabled = false
)

var (
	// likelihood runs against effective ease (0 to ~7.5)
	likelihoodThresholds = Thresholds{High: 4.0, Medium: 2.75}
	// impact runs against a 0..1 raw score
	impactThresholds = Thresholds{High: 0.67, Medium: 0.34}
)

// Privacy attack intensity lookups, normalized to [0,1].
var (
	averagingIntensity = [domain.MaxAveraging + 1]float64{0, 0.5, 1.0}
	inferenceIntensity = [domain.MaxInference + 1]float64{0, 1.0 / 3, 2.0 / 3, 1.0}
)

// Severity weights used by the privacy weighted average.
const (
	weightAveraging = 0.20
	weightInference = 0.40
	weightSingling  = 0.70
	weightLinkage   = 0.85
	weightReid      = 1.00
)

// Mitigation factors per control level: NA, Negated, Weak, Medium, Strong.
// Negated is negative and raises effective ease.
var (
	preventionFactors = [domain.MaxControl + 1]float64{0, -0.25, 0.20, 0.40, 0.60}
	detectionFactors  = [domain.MaxControl + 1]float64{0, -0.15, 0.10, 0.20, 0.35}
	responseFactors   = [domain.MaxControl + 1]float64{0, -0.10, 0.05, 0.15, 0.30}
	// NA, Loose, Moderate, Tight, Strict
	budgetFactors = [domain.MaxBudget + 1]float64{0, 0.15, 0.30, 0.45, 0.60}
)

// overallMatrix rows are likelihood 1..3, columns impact 1..3.
// It is monotone non-decreasing along both axes.
var overallMatrix = [3][3]domain.Band{
	{domain.BandInformational, domain.BandLow, domain.BandMedium},
	{domain.BandLow, domain.BandMedium, domain.BandHigh},
	{domain.BandMedium, domain.BandHigh, domain.BandCritical},
}

// Band looks up the overall band for a likelihood/impact pair.
func Band(likelihood, impact domain.Level) domain.Band {
	l := clampLevel(likelihood)
	i := clampLevel(impact)
	return overallMatrix[l-1][i-1]
}

func clampLevel(l domain.Level) domain.Level {
	if l < domain.LevelLow {
		return domain.LevelLow
	}
	if l > domain.LevelHigh {
		return domain.LevelHigh
	}
	return l
}
