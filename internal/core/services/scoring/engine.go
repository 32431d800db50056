package scoring

import (
	"math"

	"github.com/lcalzada-xor/prr/internal/core/domain"
)

// Engine reduces an assessment to Likelihood/Impact/Overall bands.
// It holds no state; Score is pure and safe for concurrent use.
type Engine struct{}

// NewEngine creates a new scoring engine instance
func NewEngine() *Engine {
	return &Engine{}
}

// Score runs the full pipeline. Inputs are clamped first, so it never fails.
func (e *Engine) Score(a domain.Assessment) domain.Scores {
	a = a.Clamp()

	fundamentals := FundamentalsRaw(a)
	privacy := PrivacyRaw(a)
	impactRaw := ImpactRaw(a.Scope, fundamentals, privacy)

	multiplier := EaseMultiplier(a)
	effectiveEase := float64(a.Ease) * multiplier

	baseL := likelihoodThresholds.Level(effectiveEase)
	baseI := impactThresholds.Level(impactRaw)

	forced := ForcedCriticalEligible(a)

	baseBand := Band(baseL, baseI)
	if shouldBiasToCritical(biasContext{
		ciaMax:          a.CIAMax(),
		reidTrue:        a.Reidentification,
		likelihoodLevel: baseL,
	}) {
		baseBand = domain.BandCritical
	}
	if forced {
		baseBand = domain.BandCritical
	}

	finalL, finalI := baseL, baseI
	if a.OverrideLikelihood != 0 {
		finalL = domain.Level(a.OverrideLikelihood)
	}
	if a.OverrideImpact != 0 {
		finalI = domain.Level(a.OverrideImpact)
	}

	finalBand := Band(finalL, finalI)
	if forced {
		finalBand = domain.BandCritical
	}
	overridden, hasOverride := domain.BandFromOverride(a.OverrideOverall)
	if hasOverride {
		finalBand = overridden
	}

	return domain.Scores{
		Likelihood:      finalL,
		Impact:          finalI,
		OverallBand:     finalBand,
		BaseLikelihood:  baseL,
		BaseImpact:      baseI,
		BaseOverallBand: baseBand,
		Flags: domain.ScoreFlags{
			ForcedCriticalEligible:     forced,
			OverallLoweredFromCritical: forced && hasOverride && overridden < domain.BandCritical,
			ReidTrue:                   a.Reidentification,
		},
		Breakdown: domain.ScoreBreakdown{
			FundamentalsRaw: fundamentals,
			PrivacyRaw:      privacy,
			ImpactRaw:       impactRaw,
			EaseMultiplier:  multiplier,
			EffectiveEase:   effectiveEase,
		},
	}
}

// FundamentalsRaw is the worst CIA axis normalized to [0,1].
func FundamentalsRaw(a domain.Assessment) float64 {
	a = a.Clamp()
	return float64(a.CIAMax()) / maxCIAValue
}

// PrivacyRaw is the weighted average of the applicable privacy attack intensities.
// Re-identification dominates: when set, the result is 1 regardless of the blend.
func PrivacyRaw(a domain.Assessment) float64 {
	a = a.Clamp()
	if a.Reidentification {
		return 1.0
	}

	aggregated := a.DataType.IncludesAggregated()
	nonAggregated := a.DataType.IncludesNonAggregated()

	var num, den float64
	add := func(applies bool, weight, intensity float64) {
		if !applies {
			return
		}
		num += weight * intensity
		den += weight
	}

	add(aggregated, weightAveraging, averagingIntensity[a.Averaging])
	add(aggregated, weightInference, inferenceIntensity[a.Inference])
	add(nonAggregated, weightSingling, boolIntensity(a.Singling))
	add(aggregated || nonAggregated, weightLinkage, linkageIntensity(a))
	add(aggregated || nonAggregated, weightReid, boolIntensity(a.Reidentification))

	if den == 0 {
		return 0
	}
	return num / den
}

// ImpactRaw combines fundamentals and privacy severity according to scope.
func ImpactRaw(scope domain.Scope, fundamentals, privacy float64) float64 {
	switch {
	case !scope.IncludesPrivacy():
		return fundamentals
	case !scope.IncludesSecurity():
		return privacy
	default:
		return math.Max(fundamentals, privacy)
	}
}

// EaseMultiplier combines prevention (with privacy budget), detection and response
// into a single multiplier clamped to [0.1, 1.5].
func EaseMultiplier(a domain.Assessment) float64 {
	a = a.Clamp()

	prevention := preventionFactors[a.Prevention]
	budget := 0.0
	if a.BudgetApplies() {
		budget = budgetFactors[a.PrivacyBudget]
	}
	combinedPrevention := 1 - (1-prevention)*(1-budget)

	total := (1 - combinedPrevention) * (1 - detectionFactors[a.Detection]) * (1 - responseFactors[a.Response])
	return math.Min(math.Max(total, minEaseMultiplier), maxEaseMultiplier)
}

// ForcedCriticalEligible reports whether re-identification on aggregated privacy data
// pins the band to Critical.
func ForcedCriticalEligible(a domain.Assessment) bool {
	a = a.Clamp()
	return a.Scope.IncludesPrivacy() && a.DataType.IncludesAggregated() && a.Reidentification
}

func linkageIntensity(a domain.Assessment) float64 {
	return 0.5*boolIntensity(a.LinkageInternalToExternal) + 0.5*boolIntensity(a.LinkageExternalToInternal)
}

func boolIntensity(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
