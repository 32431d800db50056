package scoring

import (
	"testing"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func securityBaseline() domain.Assessment {
	return domain.Assessment{
		Scope:    domain.ScopeSecurity,
		DataType: domain.DataNonAggregated,
		Ease:     3,
	}
}

func TestScore_SecurityNoFundamentals(t *testing.T) {
	s := NewEngine().Score(securityBaseline())

	assert.InDelta(t, 0.0, s.Breakdown.FundamentalsRaw, 1e-9)
	assert.InDelta(t, 1.0, s.Breakdown.EaseMultiplier, 1e-9)
	assert.Equal(t, domain.LevelMedium, s.Likelihood)
	assert.Equal(t, domain.LevelLow, s.Impact)
	assert.Equal(t, domain.BandLow, s.OverallBand)
	assert.Equal(t, s.OverallBand, s.BaseOverallBand)
	assert.False(t, s.Flags.ForcedCriticalEligible)
}

func TestScore_ForcedCriticalRegardlessOfEase(t *testing.T) {
	engine := NewEngine()

	for ease := uint8(domain.MinEase); ease <= domain.MaxEase; ease++ {
		for _, ctrl := range []domain.Control{domain.ControlNA, domain.ControlNegated, domain.ControlStrong} {
			a := domain.Assessment{
				Scope:            domain.ScopePrivacy,
				DataType:         domain.DataAggregated,
				Ease:             ease,
				Reidentification: true,
				Prevention:       ctrl,
				Detection:        ctrl,
				Response:         ctrl,
				PrivacyBudget:    domain.BudgetStrict,
			}
			s := engine.Score(a)
			assert.Equal(t, domain.BandCritical, s.BaseOverallBand, "ease=%d ctrl=%s", ease, ctrl)
			assert.Equal(t, domain.BandCritical, s.OverallBand, "ease=%d ctrl=%s", ease, ctrl)
			assert.True(t, s.Flags.ForcedCriticalEligible)
			assert.True(t, s.Flags.ReidTrue)
			assert.False(t, s.Flags.OverallLoweredFromCritical)
		}
	}
}

func TestScore_ForcedCriticalWithOverallOverride(t *testing.T) {
	engine := NewEngine()
	base := domain.Assessment{
		Scope:            domain.ScopePrivacySecurity,
		DataType:         domain.DataBoth,
		Ease:             1,
		Reidentification: true,
	}

	for override := uint8(1); override <= domain.MaxOverallOverride; override++ {
		a := base
		a.OverrideOverall = override
		s := engine.Score(a)

		assert.Equal(t, domain.BandCritical, s.BaseOverallBand)
		assert.Equal(t, domain.Band(override-1), s.OverallBand)
		assert.Equal(t, override < 5, s.Flags.OverallLoweredFromCritical, "override=%d", override)
	}
}

func TestScore_ForcedCriticalIgnoresLevelOverrides(t *testing.T) {
	a := domain.Assessment{
		Scope:              domain.ScopePrivacy,
		DataType:           domain.DataAggregated,
		Ease:               1,
		Reidentification:   true,
		OverrideLikelihood: 1,
		OverrideImpact:     1,
	}
	s := NewEngine().Score(a)

	assert.Equal(t, domain.LevelLow, s.Likelihood)
	assert.Equal(t, domain.LevelLow, s.Impact)
	assert.Equal(t, domain.BandCritical, s.OverallBand)
}

func TestScore_NotForcedWithoutAggregated(t *testing.T) {
	a := domain.Assessment{
		Scope:            domain.ScopePrivacy,
		DataType:         domain.DataNonAggregated,
		Ease:             1,
		Reidentification: true,
	}
	s := NewEngine().Score(a)

	assert.False(t, s.Flags.ForcedCriticalEligible)
	assert.True(t, s.Flags.ReidTrue)
	// privacy raw 1.0 gives High impact, ease 1 gives Low likelihood
	assert.Equal(t, domain.LevelHigh, s.Impact)
	assert.Equal(t, domain.LevelLow, s.Likelihood)
	assert.Equal(t, domain.BandMedium, s.OverallBand)
}

func TestScore_Overrides(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name      string
		mutate    func(*domain.Assessment)
		wantL     domain.Level
		wantI     domain.Level
		wantBand  domain.Band
		wantBaseB domain.Band
	}{
		{
			name:      "auto",
			mutate:    func(a *domain.Assessment) {},
			wantL:     domain.LevelMedium,
			wantI:     domain.LevelLow,
			wantBand:  domain.BandLow,
			wantBaseB: domain.BandLow,
		},
		{
			name: "level overrides",
			mutate: func(a *domain.Assessment) {
				a.OverrideLikelihood = 3
				a.OverrideImpact = 3
			},
			wantL:     domain.LevelHigh,
			wantI:     domain.LevelHigh,
			wantBand:  domain.BandCritical,
			wantBaseB: domain.BandLow,
		},
		{
			name:      "overall override uses 1..5 scale",
			mutate:    func(a *domain.Assessment) { a.OverrideOverall = 3 },
			wantL:     domain.LevelMedium,
			wantI:     domain.LevelLow,
			wantBand:  domain.BandMedium,
			wantBaseB: domain.BandLow,
		},
		{
			name: "overall override beats level overrides",
			mutate: func(a *domain.Assessment) {
				a.OverrideLikelihood = 3
				a.OverrideOverall = 1
			},
			wantL:     domain.LevelHigh,
			wantI:     domain.LevelLow,
			wantBand:  domain.BandInformational,
			wantBaseB: domain.BandLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := securityBaseline()
			tt.mutate(&a)
			s := engine.Score(a)

			assert.Equal(t, tt.wantL, s.Likelihood)
			assert.Equal(t, tt.wantI, s.Impact)
			assert.Equal(t, tt.wantBand, s.OverallBand)
			assert.Equal(t, tt.wantBaseB, s.BaseOverallBand)
			assert.Equal(t, domain.LevelMedium, s.BaseLikelihood)
			assert.Equal(t, domain.LevelLow, s.BaseImpact)
			assert.False(t, s.Flags.OverallLoweredFromCritical)
		})
	}
}

func TestScore_LikelihoodFromEase(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		ease uint8
		ctrl domain.Control
		want domain.Level
	}{
		{1, domain.ControlNA, domain.LevelLow},
		{2, domain.ControlNA, domain.LevelLow},
		{3, domain.ControlNA, domain.LevelMedium},
		{4, domain.ControlNA, domain.LevelHigh},
		{5, domain.ControlNA, domain.LevelHigh},
		// 2 * 1.5 = 3.0
		{2, domain.ControlNegated, domain.LevelMedium},
		// 3 * 1.5 = 4.5
		{3, domain.ControlNegated, domain.LevelHigh},
		// 5 * 0.1 = 0.5
		{5, domain.ControlStrong, domain.LevelLow},
	}

	for _, tt := range tests {
		a := securityBaseline()
		a.Ease = tt.ease
		a.Prevention, a.Detection, a.Response = tt.ctrl, tt.ctrl, tt.ctrl
		if tt.ctrl == domain.ControlStrong {
			a.Scope = domain.ScopePrivacy
			a.DataType = domain.DataAggregated
			a.PrivacyBudget = domain.BudgetStrict
		}
		s := engine.Score(a)
		assert.Equal(t, tt.want, s.BaseLikelihood, "ease=%d ctrl=%s effective=%.3f", tt.ease, tt.ctrl, s.Breakdown.EffectiveEase)
	}
}

func TestScore_ImpactFromFundamentals(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		c, i, a uint8
		want    domain.Level
	}{
		{0, 0, 0, domain.LevelLow},
		{1, 0, 0, domain.LevelLow},
		// 2/3 sits just below the 0.67 threshold
		{0, 2, 0, domain.LevelMedium},
		{0, 1, 3, domain.LevelHigh},
	}

	for _, tt := range tests {
		a := securityBaseline()
		a.Confidentiality, a.Integrity, a.Availability = tt.c, tt.i, tt.a
		s := engine.Score(a)
		assert.Equal(t, tt.want, s.Impact, "cia=%d/%d/%d", tt.c, tt.i, tt.a)
	}
}

func TestScore_ClampsOutOfRangeInput(t *testing.T) {
	engine := NewEngine()
	raw := domain.Assessment{
		Scope:           domain.Scope(42),
		DataType:        domain.DataType(0),
		Ease:            99,
		Confidentiality: 9,
		Averaging:       9,
		Inference:       9,
		Prevention:      domain.Control(9),
		PrivacyBudget:   domain.Budget(9),
		OverrideOverall: 9,
	}

	assert.NotPanics(t, func() { engine.Score(raw) })
	assert.Equal(t, engine.Score(raw.Clamp()), engine.Score(raw))
}

func TestScore_Deterministic(t *testing.T) {
	engine := NewEngine()
	a := domain.Assessment{
		Scope:                     domain.ScopePrivacySecurity,
		DataType:                  domain.DataBoth,
		Ease:                      4,
		Confidentiality:           2,
		Averaging:                 1,
		Inference:                 2,
		Singling:                  true,
		LinkageExternalToInternal: true,
		Prevention:                domain.ControlMedium,
		PrivacyBudget:             domain.BudgetModerate,
	}

	first := engine.Score(a)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, engine.Score(a))
	}
}
