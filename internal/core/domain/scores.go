package domain

// Level is a qualitative likelihood or impact level, 1..3.
type Level uint8

const (
	LevelLow    Level = 1
	LevelMedium Level = 2
	LevelHigh   Level = 3
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "Low"
	case LevelMedium:
		return "Medium"
	case LevelHigh:
		return "High"
	}
	return "Unknown"
}

// Band is an overall risk band index, 0..4.
type Band uint8

const (
	BandInformational Band = iota
	BandLow
	BandMedium
	BandHigh
	BandCritical
)

var bandLabels = [...]string{"Informational", "Low", "Medium", "High", "Critical"}

func (b Band) String() string {
	if int(b) < len(bandLabels) {
		return bandLabels[b]
	}
	return "Unknown"
}

// BandFromOverride maps a 1..5 overall override onto a band index.
// The second result is false for 0 (Auto) or out-of-range values.
func BandFromOverride(v uint8) (Band, bool) {
	if v == 0 || v > MaxOverallOverride {
		return 0, false
	}
	return Band(v - 1), true
}

// ScoreFlags carry the boolean outcomes of the scoring pipeline.
type ScoreFlags struct {
	ForcedCriticalEligible     bool `json:"forcedCriticalEligible"`
	OverallLoweredFromCritical bool `json:"overallLoweredFromCritical"`
	ReidTrue                   bool `json:"reidTrue"`
}

// ScoreBreakdown exposes the intermediate values of the pipeline for reports.
type ScoreBreakdown struct {
	FundamentalsRaw float64 `json:"fundamentalsRaw"`
	PrivacyRaw      float64 `json:"privacyRaw"`
	ImpactRaw       float64 `json:"impactRaw"`
	EaseMultiplier  float64 `json:"easeMultiplier"`
	EffectiveEase   float64 `json:"effectiveEase"`
}

// Scores is derived from an Assessment and never stored.
// Base values are pre-override; the others are what gets displayed and shared.
type Scores struct {
	Likelihood  Level `json:"likelihoodLevel"`
	Impact      Level `json:"impactLevel"`
	OverallBand Band  `json:"overallBandIndex"`

	BaseLikelihood  Level `json:"baseLikelihoodLevel"`
	BaseImpact      Level `json:"baseImpactLevel"`
	BaseOverallBand Band  `json:"baseOverallBandIndex"`

	Flags     ScoreFlags     `json:"flags"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}
